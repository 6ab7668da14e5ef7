package core

import (
	"context"
	"log/slog"
)

// TempSet owns the temporary structures created during one composite
// operation. Close removes every tracked structure from the workspace, so an
// operation that defers Close never leaks temporaries, on any exit path.
type TempSet struct {
	ws      Workspace
	logger  *slog.Logger
	tracked []Structure
	closed  bool
}

// NewTempSet opens an ownership scope over ws.
func NewTempSet(ws Workspace, logger *slog.Logger) *TempSet {
	return &TempSet{ws: ws, logger: logger}
}

// Create allocates a unique identifier derived from base, adds a structure
// of the given kind to the workspace, and tracks it for removal on Close.
func (t *TempSet) Create(ctx context.Context, base string, kind Kind) (Structure, error) {
	id, err := AllocateID(ctx, base, t.ws)
	if err != nil {
		return nil, err
	}
	s, err := t.ws.Add(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	t.Track(s)
	return s, nil
}

// Track registers an externally created structure for removal on Close.
func (t *TempSet) Track(s Structure) {
	t.tracked = append(t.tracked, s)
}

// Close removes every tracked structure in reverse creation order. Removal
// failures are logged and skipped so one stuck structure does not block
// cleanup of the others. Close is idempotent.
func (t *TempSet) Close(ctx context.Context) {
	if t.closed {
		return
	}
	t.closed = true

	for i := len(t.tracked) - 1; i >= 0; i-- {
		s := t.tracked[i]
		if err := t.ws.Remove(ctx, s); err != nil {
			if t.logger != nil {
				t.logger.Warn("failed to remove temporary structure", "id", s.ID(), "error", err)
			}
		}
	}
	t.tracked = nil
}
