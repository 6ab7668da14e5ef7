// Package plan loads and executes YAML plan files: a declared workspace of
// structures plus a pipeline of composite operations. Plans run against the
// in-memory adapter, which makes them a dry-run preview of the engine calls
// a real geometry host would receive.
package plan

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/voxtools/carve/pkg/core"
)

// StructureDecl declares one structure of the plan workspace.
type StructureDecl struct {
	ID        string `yaml:"id"`
	Kind      string `yaml:"kind,omitempty"`
	HighRes   bool   `yaml:"highRes,omitempty"`
	Protected bool   `yaml:"protected,omitempty"`
}

// Step is one pipeline operation. Selector fields (base, a, b, from) hold
// doublestar patterns resolved against workspace identifiers.
type Step struct {
	Op          string    `yaml:"op"`
	Base        []string  `yaml:"base,omitempty"`
	A           []string  `yaml:"a,omitempty"`
	B           []string  `yaml:"b,omitempty"`
	From        []string  `yaml:"from,omitempty"`
	Start       float64   `yaml:"start,omitempty"`
	End         float64   `yaml:"end,omitempty"`
	Distance    float64   `yaml:"distance,omitempty"`
	Distances   []float64 `yaml:"distances,omitempty"`
	Orientation string    `yaml:"orientation,omitempty"`
	HighRes     bool      `yaml:"highRes,omitempty"`
	Output      string    `yaml:"output,omitempty"`
	OutputKind  string    `yaml:"outputKind,omitempty"`
}

// Plan is a parsed plan file.
type Plan struct {
	Structures []StructureDecl `yaml:"structures"`
	Pipeline   []Step          `yaml:"pipeline"`
}

// Known operation names.
const (
	OpRing        = "ring"
	OpUnion       = "union"
	OpIntersect   = "intersect"
	OpSubtract    = "subtract"
	OpNonOverlap  = "non-overlap"
	OpCropOutside = "crop-outside"
	OpCropInside  = "crop-inside"
	OpMargin      = "margin"
	OpAMargin     = "amargin"
)

var knownOps = map[string]bool{
	OpRing:        true,
	OpUnion:       true,
	OpIntersect:   true,
	OpSubtract:    true,
	OpNonOverlap:  true,
	OpCropOutside: true,
	OpCropInside:  true,
	OpMargin:      true,
	OpAMargin:     true,
}

// Parse decodes and validates a plan document.
func Parse(r io.Reader) (*Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and parses a plan file.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan %s: %w", path, err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return p, nil
}

func (p *Plan) validate() error {
	seen := make(map[string]bool, len(p.Structures))
	for i, decl := range p.Structures {
		if decl.ID == "" {
			return fmt.Errorf("structure %d has no id: %w", i, core.ErrInvalidArgument)
		}
		if seen[decl.ID] {
			return fmt.Errorf("duplicate structure id %q: %w", decl.ID, core.ErrInvalidArgument)
		}
		seen[decl.ID] = true
	}

	for i, step := range p.Pipeline {
		if !knownOps[step.Op] {
			return fmt.Errorf("step %d: unknown op %q: %w", i, step.Op, core.ErrInvalidArgument)
		}
		if step.Op == OpAMargin && len(step.Distances) != 6 {
			return fmt.Errorf("step %d: amargin needs 6 distances, got %d: %w", i, len(step.Distances), core.ErrInvalidMargin)
		}
		if step.Orientation != "" && step.Orientation != "outer" && step.Orientation != "inner" {
			return fmt.Errorf("step %d: orientation %q must be outer or inner: %w", i, step.Orientation, core.ErrInvalidArgument)
		}
	}
	return nil
}

func (s Step) orientation() core.Orientation {
	if s.Orientation == "inner" {
		return core.Inner
	}
	return core.Outer
}

func (s Step) outputKind() core.Kind {
	if s.OutputKind != "" {
		return core.Kind(s.OutputKind)
	}
	return core.KindControl
}
