package core_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/voxtools/carve/pkg/core"
)

// fakeStructure implements core.Structure in memory.
type fakeStructure struct {
	id         string
	kind       core.Kind
	vol        core.Volume
	highRes    bool
	protected  bool
	convertErr error
}

func (s *fakeStructure) ID() string                { return s.id }
func (s *fakeStructure) Kind() core.Kind           { return s.kind }
func (s *fakeStructure) Volume() core.Volume       { return s.vol }
func (s *fakeStructure) SetVolume(v core.Volume)   { s.vol = v }
func (s *fakeStructure) IsHighRes() bool           { return s.highRes }
func (s *fakeStructure) CanConvertToHighRes() bool { return !s.protected }

func (s *fakeStructure) ConvertToHighRes() error {
	if s.protected {
		return fmt.Errorf("structure %s is protected", s.id)
	}
	if s.convertErr != nil {
		return s.convertErr
	}
	s.highRes = true
	return nil
}

// fakeWorkspace implements core.Workspace over an ordered slice.
type fakeWorkspace struct {
	structures []*fakeStructure
	failRemove map[string]bool
}

func newFakeWorkspace() *fakeWorkspace {
	return &fakeWorkspace{failRemove: make(map[string]bool)}
}

func (w *fakeWorkspace) add(s *fakeStructure) *fakeStructure {
	w.structures = append(w.structures, s)
	return s
}

func (w *fakeWorkspace) Add(ctx context.Context, kind core.Kind, id string) (core.Structure, error) {
	for _, s := range w.structures {
		if s.id == id {
			return nil, fmt.Errorf("duplicate identifier %q", id)
		}
	}
	return w.add(&fakeStructure{id: id, kind: kind}), nil
}

func (w *fakeWorkspace) Remove(ctx context.Context, s core.Structure) error {
	if w.failRemove[s.ID()] {
		return fmt.Errorf("removal of %q refused", s.ID())
	}
	for i, have := range w.structures {
		if have.id == s.ID() {
			w.structures = append(w.structures[:i], w.structures[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("structure %q not found", s.ID())
}

func (w *fakeWorkspace) List(ctx context.Context) ([]core.Structure, error) {
	out := make([]core.Structure, len(w.structures))
	for i, s := range w.structures {
		out[i] = s
	}
	return out, nil
}

func (w *fakeWorkspace) ids() []string {
	out := make([]string, len(w.structures))
	for i, s := range w.structures {
		out[i] = s.id
	}
	return out
}

// traceEngine implements core.Engine symbolically: volumes are strings
// recording the calls that produced them. It enforces the per-call limit the
// way a real geometry host would.
type traceEngine struct {
	limit float64
	calls []string
}

func newTraceEngine() *traceEngine {
	return &traceEngine{limit: core.StepLimit}
}

func (e *traceEngine) record(format string, args ...any) {
	e.calls = append(e.calls, fmt.Sprintf(format, args...))
}

func (e *traceEngine) Margin(ctx context.Context, v core.Volume, distance float64) (core.Volume, error) {
	if distance > e.limit || distance < -e.limit {
		return nil, fmt.Errorf("margin distance %v beyond engine limit %v", distance, e.limit)
	}
	e.record("margin:%g", distance)
	return fmt.Sprintf("margin(%v,%g)", v, distance), nil
}

func (e *traceEngine) AsymmetricMargin(ctx context.Context, v core.Volume, o core.Orientation, d core.AxisMargins) (core.Volume, error) {
	for _, dk := range d {
		if dk > e.limit {
			return nil, fmt.Errorf("axis distance %v beyond engine limit %v", dk, e.limit)
		}
	}
	parts := make([]string, len(d))
	for i, dk := range d {
		parts[i] = fmt.Sprintf("%g", dk)
	}
	e.record("amargin:%s", strings.Join(parts, ","))
	return fmt.Sprintf("amargin(%v,%s,[%s])", v, o, strings.Join(parts, ",")), nil
}

func (e *traceEngine) Or(ctx context.Context, a, b core.Volume) (core.Volume, error) {
	e.record("or")
	return fmt.Sprintf("or(%v,%v)", a, b), nil
}

func (e *traceEngine) And(ctx context.Context, a, b core.Volume) (core.Volume, error) {
	e.record("and")
	return fmt.Sprintf("and(%v,%v)", a, b), nil
}

func (e *traceEngine) Sub(ctx context.Context, a, b core.Volume) (core.Volume, error) {
	e.record("sub")
	return fmt.Sprintf("sub(%v,%v)", a, b), nil
}

func (e *traceEngine) Xor(ctx context.Context, a, b core.Volume) (core.Volume, error) {
	e.record("xor")
	return fmt.Sprintf("xor(%v,%v)", a, b), nil
}

func (e *traceEngine) Not(ctx context.Context, v core.Volume) (core.Volume, error) {
	e.record("not")
	return fmt.Sprintf("not(%v)", v), nil
}
