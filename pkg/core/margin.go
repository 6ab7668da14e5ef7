package core

import (
	"context"
	"fmt"
	"math"
)

// marginEpsilon is the threshold below which a distance is treated as zero.
const marginEpsilon = 1e-9

// SteppedMargin decomposes margin distances beyond the Engine's per-call
// limit into repeated bounded calls plus a remainder. A zero Limit means
// StepLimit.
type SteppedMargin struct {
	Engine Engine
	Limit  float64
}

// NewSteppedMargin returns a SteppedMargin with the default StepLimit.
func NewSteppedMargin(engine Engine) SteppedMargin {
	return SteppedMargin{Engine: engine, Limit: StepLimit}
}

func (m SteppedMargin) limit() float64 {
	if m.Limit > 0 {
		return m.Limit
	}
	return StepLimit
}

// Isotropic applies a uniform signed margin: positive grows, negative
// shrinks. Distances within the limit map to a single engine call; larger
// ones become floor(|d|/limit) full steps feeding into each other plus one
// remainder call. A negligible distance returns v unchanged.
func (m SteppedMargin) Isotropic(ctx context.Context, v Volume, distance float64) (Volume, error) {
	mag := math.Abs(distance)
	if mag < marginEpsilon {
		return v, nil
	}

	sign := 1.0
	if distance < 0 {
		sign = -1.0
	}

	limit := m.limit()
	steps := int(math.Floor(mag / limit))
	remainder := math.Mod(mag, limit)

	out := v
	var err error
	for i := 0; i < steps; i++ {
		out, err = m.Engine.Margin(ctx, out, sign*limit)
		if err != nil {
			return nil, fmt.Errorf("margin step %d of %d: %w", i+1, steps, err)
		}
	}
	if remainder > marginEpsilon {
		out, err = m.Engine.Margin(ctx, out, sign*remainder)
		if err != nil {
			return nil, fmt.Errorf("margin remainder: %w", err)
		}
	}
	return out, nil
}

// Asymmetric applies six per-axis margins in the given orientation. All
// distances must be non-negative magnitudes. When every axis is within the
// limit this is a single engine call; otherwise the axes advance together in
// limit-sized steps (a finished axis contributes zero, which is a no-op for
// that axis) followed by one remainder call.
func (m SteppedMargin) Asymmetric(ctx context.Context, v Volume, o Orientation, d AxisMargins) (Volume, error) {
	for k, dk := range d {
		if dk < 0 {
			return nil, fmt.Errorf("axis %d distance %v is negative: %w", k, dk, ErrInvalidMargin)
		}
	}

	limit := m.limit()
	within := true
	for _, dk := range d {
		if dk > limit {
			within = false
			break
		}
	}
	if within {
		return m.Engine.AsymmetricMargin(ctx, v, o, d)
	}

	var steps [6]int
	var remainder AxisMargins
	maxSteps := 0
	for k, dk := range d {
		steps[k] = int(math.Floor(dk / limit))
		remainder[k] = math.Mod(dk, limit)
		if steps[k] > maxSteps {
			maxSteps = steps[k]
		}
	}

	out := v
	var err error
	for i := 0; i < maxSteps; i++ {
		var step AxisMargins
		for k := range step {
			if steps[k] > i {
				step[k] = limit
			}
		}
		out, err = m.Engine.AsymmetricMargin(ctx, out, o, step)
		if err != nil {
			return nil, fmt.Errorf("asymmetric margin step %d of %d: %w", i+1, maxSteps, err)
		}
	}

	for _, r := range remainder {
		if r > marginEpsilon {
			out, err = m.Engine.AsymmetricMargin(ctx, out, o, remainder)
			if err != nil {
				return nil, fmt.Errorf("asymmetric margin remainder: %w", err)
			}
			break
		}
	}
	return out, nil
}
