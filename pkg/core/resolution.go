package core

import (
	"context"
	"fmt"
	"log/slog"
)

// ResolutionGuard reconciles mixed-resolution inputs before a boolean
// combination. Combining volumes of different resolution modes produces
// geometrically wrong results, so when high resolution is needed every input
// must end up high resolution: converted in place when the host allows it,
// or via a temporary copy when it does not.
type ResolutionGuard struct {
	ws     Workspace
	logger *slog.Logger
	warn   WarningFunc
}

// NewResolutionGuard returns a guard bound to ws.
func NewResolutionGuard(ws Workspace) *ResolutionGuard {
	return &ResolutionGuard{ws: ws}
}

// SetLogger sets the logger used for fallback diagnostics.
func (g *ResolutionGuard) SetLogger(logger *slog.Logger) { g.logger = logger }

// SetWarningFunc routes non-fatal diagnostics to f instead of the logger.
func (g *ResolutionGuard) SetWarningFunc(f WarningFunc) { g.warn = f }

// Ensure returns a structure whose volume is safe to combine under the given
// resolution requirement. When no conversion is needed (or s already is high
// resolution) the input is returned unchanged. An in-place conversion is
// attempted first; if the host forbids it, a temporary copy is created in
// the workspace, converted, and tracked by temps. Failure to convert even
// the temporary is fatal: mixed-resolution combination is never silently
// accepted when high resolution is required.
func (g *ResolutionGuard) Ensure(ctx context.Context, s Structure, needed bool, temps *TempSet) (Structure, error) {
	if !needed || s.IsHighRes() {
		return s, nil
	}

	if s.CanConvertToHighRes() {
		err := s.ConvertToHighRes()
		if err == nil {
			return s, nil
		}
		// The host reported convertible but refused; fall back to a copy.
		g.emit(Warning{
			Op:          "resolution",
			StructureID: s.ID(),
			Message:     fmt.Sprintf("in-place conversion failed (%v), using a temporary copy", err),
		})
	}

	tmp, err := temps.Create(ctx, s.ID(), KindControl)
	if err != nil {
		return nil, err
	}
	tmp.SetVolume(s.Volume())

	if !tmp.CanConvertToHighRes() {
		return nil, fmt.Errorf("structure %q: temporary copy not convertible: %w", s.ID(), ErrResolutionConversion)
	}
	if err := tmp.ConvertToHighRes(); err != nil {
		return nil, fmt.Errorf("structure %q: %v: %w", s.ID(), err, ErrResolutionConversion)
	}
	return tmp, nil
}

func (g *ResolutionGuard) emit(w Warning) {
	if g.warn != nil {
		g.warn(w)
		return
	}
	if g.logger != nil {
		g.logger.Warn(w.Message, "op", w.Op, "id", w.StructureID)
	}
}

// NeedHighRes reports whether a combination must run in high resolution: an
// explicit caller request, or any input already being high resolution.
// Resolution is contagious across a combination.
func NeedHighRes(explicit bool, groups ...[]Structure) bool {
	if explicit {
		return true
	}
	for _, group := range groups {
		for _, s := range group {
			if s.IsHighRes() {
				return true
			}
		}
	}
	return false
}
