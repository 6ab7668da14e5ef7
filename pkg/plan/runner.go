package plan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/voxtools/carve/pkg/adapters/mem"
	"github.com/voxtools/carve/pkg/core"
)

// Result describes one executed pipeline step.
type Result struct {
	Step   int
	Op     string
	Output string
	Volume string
	Empty  bool
}

// Runner executes plans against fresh in-memory workspaces.
type Runner struct {
	logger *slog.Logger
	warn   core.WarningFunc
}

// NewRunner creates a Runner. Both arguments may be nil.
func NewRunner(logger *slog.Logger, warn core.WarningFunc) *Runner {
	return &Runner{logger: logger, warn: warn}
}

// Run seeds a workspace from the plan's structure declarations, executes the
// pipeline in order, and returns one Result per step. Steps with an output
// id get their result volume assigned to a newly added structure, so later
// steps can select it.
func (r *Runner) Run(ctx context.Context, p *Plan) ([]Result, *mem.Workspace, error) {
	ws := mem.NewWorkspace()
	engine := mem.NewEngine()
	svc := core.NewService(ws, engine)
	if r.logger != nil {
		svc.SetLogger(r.logger)
	}
	if r.warn != nil {
		svc.SetWarningFunc(r.warn)
	}

	for _, decl := range p.Structures {
		kind := core.Kind(decl.Kind)
		if kind == "" {
			kind = core.KindOrgan
		}
		s, err := ws.Add(ctx, kind, decl.ID)
		if err != nil {
			return nil, nil, err
		}
		if decl.HighRes {
			s.(*mem.Structure).MarkHighRes()
		}
		if decl.Protected {
			s.(*mem.Structure).MarkProtected()
		}
	}

	results := make([]Result, 0, len(p.Pipeline))
	for i, step := range p.Pipeline {
		vol, err := r.runStep(ctx, svc, step)
		if err != nil {
			return results, ws, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}

		res := Result{Step: i, Op: step.Op, Output: step.Output, Empty: vol == nil}
		if vol != nil {
			res.Volume = fmt.Sprintf("%v", vol)
			if step.Output != "" {
				out, err := ws.Add(ctx, step.outputKind(), step.Output)
				if err != nil {
					return results, ws, fmt.Errorf("step %d (%s): output: %w", i, step.Op, err)
				}
				out.SetVolume(vol)
			}
		}
		if r.logger != nil {
			r.logger.Debug("step executed", "step", i, "op", step.Op, "empty", res.Empty)
		}
		results = append(results, res)
	}
	return results, ws, nil
}

func (r *Runner) runStep(ctx context.Context, svc *core.Service, step Step) (core.Volume, error) {
	base, err := resolve(ctx, svc, step.Base)
	if err != nil {
		return nil, err
	}
	a, err := resolve(ctx, svc, step.A)
	if err != nil {
		return nil, err
	}
	b, err := resolve(ctx, svc, step.B)
	if err != nil {
		return nil, err
	}
	from, err := resolve(ctx, svc, step.From)
	if err != nil {
		return nil, err
	}

	switch step.Op {
	case OpRing:
		return svc.Ring(ctx, base, step.Start, step.End, step.HighRes)
	case OpUnion:
		return svc.Union(ctx, a, b)
	case OpIntersect:
		return svc.Intersection(ctx, a, b)
	case OpSubtract:
		return svc.Subtraction(ctx, a, b)
	case OpNonOverlap:
		return svc.NonOverlap(ctx, a, b)
	case OpCropOutside:
		return svc.CropExtendingOutside(ctx, base, from, step.Distance)
	case OpCropInside:
		return svc.CropExtendingInside(ctx, base, from, step.Distance)
	case OpMargin:
		return svc.Margin(ctx, base, step.Distance, step.HighRes)
	case OpAMargin:
		var d core.AxisMargins
		copy(d[:], step.Distances)
		return svc.AsymmetricMargin(ctx, base, step.orientation(), d, step.HighRes)
	default:
		return nil, fmt.Errorf("unknown op %q: %w", step.Op, core.ErrInvalidArgument)
	}
}

// resolve expands selector patterns in order, deduplicating matches while
// preserving first appearance. A pattern matching nothing contributes
// nothing; the composite operations define the empty-input semantics.
func resolve(ctx context.Context, svc *core.Service, patterns []string) ([]core.Structure, error) {
	var out []core.Structure
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := svc.Select(ctx, pattern)
		if err != nil {
			return nil, err
		}
		for _, s := range matches {
			if !seen[s.ID()] {
				seen[s.ID()] = true
				out = append(out, s)
			}
		}
	}
	return out, nil
}
