package mem

import (
	"context"
	"fmt"

	"github.com/voxtools/carve/pkg/core"
)

// Structure implements core.Structure in memory.
type Structure struct {
	id        string
	kind      core.Kind
	vol       core.Volume
	highRes   bool
	protected bool
}

// ID implements core.Structure.
func (s *Structure) ID() string { return s.id }

// Kind implements core.Structure.
func (s *Structure) Kind() core.Kind { return s.kind }

// Volume implements core.Structure.
func (s *Structure) Volume() core.Volume { return s.vol }

// SetVolume implements core.Structure.
func (s *Structure) SetVolume(v core.Volume) { s.vol = v }

// IsHighRes implements core.Structure.
func (s *Structure) IsHighRes() bool { return s.highRes }

// CanConvertToHighRes implements core.Structure.
func (s *Structure) CanConvertToHighRes() bool { return !s.protected }

// ConvertToHighRes implements core.Structure. The switch is irreversible.
func (s *Structure) ConvertToHighRes() error {
	if s.protected {
		return fmt.Errorf("structure %q is protected", s.id)
	}
	s.highRes = true
	return nil
}

// MarkHighRes seeds the structure as already high resolution.
func (s *Structure) MarkHighRes() { s.highRes = true }

// MarkProtected blocks in-place conversion, mimicking host-approved
// structures.
func (s *Structure) MarkProtected() { s.protected = true }

// Workspace implements core.Workspace over an ordered in-memory registry.
// Like every core.Workspace it expects single-writer access.
type Workspace struct {
	order []*Structure
	index map[string]*Structure
}

// NewWorkspace returns an empty Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{index: make(map[string]*Structure)}
}

// Add implements core.Workspace.
func (w *Workspace) Add(ctx context.Context, kind core.Kind, id string) (core.Structure, error) {
	if id == "" {
		return nil, fmt.Errorf("empty identifier: %w", core.ErrInvalidArgument)
	}
	if len(id) > core.MaxIDLength {
		return nil, fmt.Errorf("identifier %q: %w", id, core.ErrIdentifierTooLong)
	}
	if _, exists := w.index[id]; exists {
		return nil, fmt.Errorf("duplicate identifier %q: %w", id, core.ErrInvalidArgument)
	}

	s := &Structure{id: id, kind: kind, vol: Seed(id)}
	w.order = append(w.order, s)
	w.index[id] = s
	return s, nil
}

// Remove implements core.Workspace.
func (w *Workspace) Remove(ctx context.Context, s core.Structure) error {
	if s == nil {
		return fmt.Errorf("nil structure: %w", core.ErrInvalidArgument)
	}
	if _, exists := w.index[s.ID()]; !exists {
		return fmt.Errorf("structure %q not found", s.ID())
	}
	delete(w.index, s.ID())
	for i, have := range w.order {
		if have.id == s.ID() {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return nil
}

// List implements core.Workspace. Structures come back in insertion order.
func (w *Workspace) List(ctx context.Context) ([]core.Structure, error) {
	out := make([]core.Structure, len(w.order))
	for i, s := range w.order {
		out[i] = s
	}
	return out, nil
}

// Get looks a structure up by identifier.
func (w *Workspace) Get(id string) (*Structure, bool) {
	s, ok := w.index[id]
	return s, ok
}

// IDs returns the identifiers in insertion order.
func (w *Workspace) IDs() []string {
	out := make([]string, len(w.order))
	for i, s := range w.order {
		out[i] = s.id
	}
	return out
}

// StructureInfo is the serialisable view of one structure.
type StructureInfo struct {
	ID      string `yaml:"id" json:"id"`
	Kind    string `yaml:"kind" json:"kind"`
	HighRes bool   `yaml:"highRes,omitempty" json:"high_res,omitempty"`
	Volume  string `yaml:"volume,omitempty" json:"volume,omitempty"`
}

// Snapshot returns the serialisable state of the workspace, in insertion
// order. Handy for listing and for asserting no temporaries leaked.
func (w *Workspace) Snapshot() []StructureInfo {
	out := make([]StructureInfo, len(w.order))
	for i, s := range w.order {
		info := StructureInfo{
			ID:      s.id,
			Kind:    string(s.kind),
			HighRes: s.highRes,
		}
		if s.vol != nil {
			info.Volume = fmt.Sprintf("%v", s.vol)
		}
		out[i] = info
	}
	return out
}

// ComponentType implements introspection.Component.
func (w *Workspace) ComponentType() string {
	return "mem-workspace"
}

var _ core.Workspace = (*Workspace)(nil)
