package core

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Select returns the workspace structures whose identifiers match the glob
// pattern, in listing order. Patterns follow doublestar syntax, so "PTV*"
// or "Lung_{L,R}" both work.
func (s *Service) Select(ctx context.Context, pattern string) ([]Structure, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty selection pattern: %w", ErrInvalidArgument)
	}

	list, err := s.ws.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []Structure
	for _, st := range list {
		ok, err := doublestar.Match(pattern, st.ID())
		if err != nil {
			return nil, fmt.Errorf("selection pattern %q: %w", pattern, ErrInvalidArgument)
		}
		if ok {
			out = append(out, st)
		}
	}
	return out, nil
}
