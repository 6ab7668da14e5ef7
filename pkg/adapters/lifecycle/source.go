package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/voxtools/carve/pkg/plan"
)

type planSource struct {
	events <-chan plan.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits plan run events.
// It bridges the typed plan event channel to the generic lifecycle Event
// interface.
func NewSource(events <-chan plan.Event) lifecycle.Source {
	return &planSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *planSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *planSource) Start(ctx context.Context) error {
	// The bridge runs under lifecycle.Go so it is tracked and torn down
	// with the rest of the application.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// plan.Event satisfies lifecycle.Event through its
				// String method.
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
