package core

import (
	"context"
	"fmt"
	"strconv"
)

// maxAllocateAttempts bounds the number of collision probes per allocation.
const maxAllocateAttempts = 1000

// AllocateID returns an identifier unique within ws, derived from base.
//
// If base is free and within MaxIDLength it is returned unchanged. Otherwise
// numeric suffixes "_0", "_1", ... are probed in order. Once a candidate
// would exceed MaxIDLength, base is truncated on its left so that the
// truncated id plus suffix fits exactly; the truncated candidate is checked
// once and allocation fails if it still collides. A base longer than
// MaxIDLength fails outright with ErrIdentifierTooLong.
func AllocateID(ctx context.Context, base string, ws Workspace) (string, error) {
	if len(base) > MaxIDLength {
		return "", fmt.Errorf("base %q is %d characters: %w", base, len(base), ErrIdentifierTooLong)
	}

	used, err := usedIDs(ctx, ws)
	if err != nil {
		return "", fmt.Errorf("failed to list workspace identifiers: %w", err)
	}

	if _, taken := used[base]; !taken {
		return base, nil
	}

	attempts := 0
	for i := 0; ; i++ {
		attempts++
		if attempts > maxAllocateAttempts {
			return "", fmt.Errorf("no free identifier for %q after %d attempts: %w", base, maxAllocateAttempts, ErrIdentifierExhausted)
		}

		suffix := "_" + strconv.Itoa(i)
		if len(base)+len(suffix) <= MaxIDLength {
			candidate := base + suffix
			if _, taken := used[candidate]; !taken {
				return candidate, nil
			}
			continue
		}

		// Out of room: truncate from the left so id+suffix fits exactly.
		// This is checked once; a collision here is a failure, not a cue
		// for further combinatorics.
		cut := len(base) + len(suffix) - MaxIDLength
		candidate := base[cut:] + suffix
		if _, taken := used[candidate]; !taken {
			return candidate, nil
		}
		return "", fmt.Errorf("truncated candidate %q for base %q collides: %w", candidate, base, ErrIdentifierExhausted)
	}
}

func usedIDs(ctx context.Context, ws Workspace) (map[string]struct{}, error) {
	list, err := ws.List(ctx)
	if err != nil {
		return nil, err
	}
	used := make(map[string]struct{}, len(list))
	for _, s := range list {
		used[s.ID()] = struct{}{}
	}
	return used, nil
}
