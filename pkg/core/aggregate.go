package core

import (
	"context"
	"fmt"
)

// Aggregator folds a collection of structures into one OR-combined volume.
type Aggregator struct {
	Engine Engine
	Guard  *ResolutionGuard
}

// Fold combines the volumes of all structures with boolean OR, passing each
// one through the resolution guard first. Structures are visited in the
// given order so conversions and temporary creation stay deterministic.
// An empty collection fails with ErrEmptyInput.
func (a Aggregator) Fold(ctx context.Context, structures []Structure, needed bool, temps *TempSet) (Volume, error) {
	if len(structures) == 0 {
		return nil, ErrEmptyInput
	}

	first, err := a.Guard.Ensure(ctx, structures[0], needed, temps)
	if err != nil {
		return nil, err
	}
	acc := first.Volume()

	for _, s := range structures[1:] {
		h, err := a.Guard.Ensure(ctx, s, needed, temps)
		if err != nil {
			return nil, err
		}
		acc, err = a.Engine.Or(ctx, acc, h.Volume())
		if err != nil {
			return nil, fmt.Errorf("failed to combine %q: %w", s.ID(), err)
		}
	}
	return acc, nil
}
