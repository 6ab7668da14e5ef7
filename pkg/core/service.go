package core

import (
	"context"
	"fmt"
	"log/slog"
)

// Service exposes the composite structure operations. Every operation opens
// one TempSet, does its work, and closes it via defer, so no temporary
// structure is ever observable by the caller after the call returns.
//
// Operations that have nothing to produce (e.g. the union of two empty
// collections) return a nil Volume with a nil error.
//
// A Service assumes single-writer access to its Workspace; see Workspace.
type Service struct {
	ws     Workspace
	engine Engine
	logger *slog.Logger

	margin SteppedMargin
	guard  *ResolutionGuard
	agg    Aggregator
}

// NewService creates a new Service over a workspace and a geometry engine.
func NewService(ws Workspace, engine Engine) *Service {
	guard := NewResolutionGuard(ws)
	return &Service{
		ws:     ws,
		engine: engine,
		margin: NewSteppedMargin(engine),
		guard:  guard,
		agg:    Aggregator{Engine: engine, Guard: guard},
	}
}

// SetLogger sets the logger for the service and its internals.
func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger
	s.guard.SetLogger(logger)
}

// SetWarningFunc routes non-fatal diagnostics to f instead of the logger.
func (s *Service) SetWarningFunc(f WarningFunc) {
	s.guard.SetWarningFunc(f)
}

// SetStepLimit overrides the engine's per-call margin limit.
func (s *Service) SetStepLimit(limit float64) error {
	if limit <= 0 {
		return fmt.Errorf("step limit %v must be positive: %w", limit, ErrInvalidArgument)
	}
	s.margin.Limit = limit
	return nil
}

// Workspace returns the workspace the service operates on.
func (s *Service) Workspace() Workspace { return s.ws }

// Engine returns the geometry engine the service delegates to.
func (s *Service) Engine() Engine { return s.engine }

// Ring builds a shell around the combined base structures: the volume grown
// by end minus the volume grown by start. Both distances must be
// non-negative and end must exceed start.
func (s *Service) Ring(ctx context.Context, base []Structure, start, end float64, highRes bool) (Volume, error) {
	if start < 0 || end < 0 {
		return nil, fmt.Errorf("ring distances must be non-negative (start=%v end=%v): %w", start, end, ErrInvalidMargin)
	}
	if end <= start {
		return nil, fmt.Errorf("ring end %v must exceed start %v: %w", end, start, ErrInvalidMargin)
	}

	temps := NewTempSet(s.ws, s.logger)
	defer temps.Close(ctx)

	needed := NeedHighRes(highRes, base)
	sv, err := s.agg.Fold(ctx, base, needed, temps)
	if err != nil {
		return nil, err
	}

	inner, err := temps.Create(ctx, "ringInner", KindControl)
	if err != nil {
		return nil, err
	}
	vol, err := s.margin.Isotropic(ctx, sv, start)
	if err != nil {
		return nil, err
	}
	inner.SetVolume(vol)

	outer, err := temps.Create(ctx, "ringOuter", KindControl)
	if err != nil {
		return nil, err
	}
	vol, err = s.margin.Isotropic(ctx, sv, end)
	if err != nil {
		return nil, err
	}
	outer.SetVolume(vol)

	return s.engine.Sub(ctx, outer.Volume(), inner.Volume())
}

// CropExtendingOutside removes from the primary structures everything that
// lies outside the cropFrom boundary, extended outward by distance. An empty
// primary yields no result; an empty cropFrom is a no-op crop and returns
// the primary fold unchanged.
func (s *Service) CropExtendingOutside(ctx context.Context, primary, cropFrom []Structure, distance float64) (Volume, error) {
	return s.crop(ctx, primary, cropFrom, distance, true)
}

// CropExtendingInside removes from the primary structures everything inside
// the cropFrom boundary, extended inward coverage by distance. Empty-input
// handling matches CropExtendingOutside.
func (s *Service) CropExtendingInside(ctx context.Context, primary, cropFrom []Structure, distance float64) (Volume, error) {
	return s.crop(ctx, primary, cropFrom, distance, false)
}

func (s *Service) crop(ctx context.Context, primary, cropFrom []Structure, distance float64, outside bool) (Volume, error) {
	if distance < 0 {
		return nil, fmt.Errorf("crop distance %v must be non-negative: %w", distance, ErrInvalidMargin)
	}
	if len(primary) == 0 {
		return nil, nil
	}

	temps := NewTempSet(s.ws, s.logger)
	defer temps.Close(ctx)

	needed := NeedHighRes(false, primary, cropFrom)
	svp, err := s.agg.Fold(ctx, primary, needed, temps)
	if err != nil {
		return nil, err
	}
	if len(cropFrom) == 0 {
		return svp, nil
	}

	boundary, err := s.agg.Fold(ctx, cropFrom, needed, temps)
	if err != nil {
		return nil, err
	}

	region := boundary
	if outside {
		region, err = s.engine.Not(ctx, boundary)
		if err != nil {
			return nil, err
		}
	}
	region, err = s.margin.Isotropic(ctx, region, distance)
	if err != nil {
		return nil, err
	}
	return s.engine.Sub(ctx, svp, region)
}

// Union combines the two collections with boolean OR. With one side empty
// the other side's fold is returned; with both empty there is no result.
func (s *Service) Union(ctx context.Context, s1, s2 []Structure) (Volume, error) {
	if len(s1) == 0 && len(s2) == 0 {
		return nil, nil
	}

	temps := NewTempSet(s.ws, s.logger)
	defer temps.Close(ctx)

	needed := NeedHighRes(false, s1, s2)
	if len(s1) == 0 {
		return s.agg.Fold(ctx, s2, needed, temps)
	}
	if len(s2) == 0 {
		return s.agg.Fold(ctx, s1, needed, temps)
	}

	a, err := s.agg.Fold(ctx, s1, needed, temps)
	if err != nil {
		return nil, err
	}
	b, err := s.agg.Fold(ctx, s2, needed, temps)
	if err != nil {
		return nil, err
	}
	return s.engine.Or(ctx, a, b)
}

// Intersection combines the two collections with boolean AND. Intersection
// with nothing is nothing: either side empty yields no result.
func (s *Service) Intersection(ctx context.Context, s1, s2 []Structure) (Volume, error) {
	if len(s1) == 0 || len(s2) == 0 {
		return nil, nil
	}

	temps := NewTempSet(s.ws, s.logger)
	defer temps.Close(ctx)

	needed := NeedHighRes(false, s1, s2)
	a, err := s.agg.Fold(ctx, s1, needed, temps)
	if err != nil {
		return nil, err
	}
	b, err := s.agg.Fold(ctx, s2, needed, temps)
	if err != nil {
		return nil, err
	}
	return s.engine.And(ctx, a, b)
}

// Subtraction removes the second collection's fold from the first's. An
// empty s1 yields no result; an empty s2 returns the s1 fold unchanged.
func (s *Service) Subtraction(ctx context.Context, s1, s2 []Structure) (Volume, error) {
	if len(s1) == 0 {
		return nil, nil
	}

	temps := NewTempSet(s.ws, s.logger)
	defer temps.Close(ctx)

	needed := NeedHighRes(false, s1, s2)
	a, err := s.agg.Fold(ctx, s1, needed, temps)
	if err != nil {
		return nil, err
	}
	if len(s2) == 0 {
		return a, nil
	}
	b, err := s.agg.Fold(ctx, s2, needed, temps)
	if err != nil {
		return nil, err
	}
	return s.engine.Sub(ctx, a, b)
}

// NonOverlap returns the symmetric difference of the two collections. XOR
// with an empty side is the identity, so one empty side returns the other
// side's fold; both empty yields no result.
func (s *Service) NonOverlap(ctx context.Context, s1, s2 []Structure) (Volume, error) {
	if len(s1) == 0 && len(s2) == 0 {
		return nil, nil
	}

	temps := NewTempSet(s.ws, s.logger)
	defer temps.Close(ctx)

	needed := NeedHighRes(false, s1, s2)
	if len(s1) == 0 {
		return s.agg.Fold(ctx, s2, needed, temps)
	}
	if len(s2) == 0 {
		return s.agg.Fold(ctx, s1, needed, temps)
	}

	a, err := s.agg.Fold(ctx, s1, needed, temps)
	if err != nil {
		return nil, err
	}
	b, err := s.agg.Fold(ctx, s2, needed, temps)
	if err != nil {
		return nil, err
	}
	return s.engine.Xor(ctx, a, b)
}

// One wraps a single structure for the collection-taking operations.
func One(s Structure) []Structure {
	if s == nil {
		return nil
	}
	return []Structure{s}
}

// RingOf is the single-structure form of Ring.
func (s *Service) RingOf(ctx context.Context, base Structure, start, end float64, highRes bool) (Volume, error) {
	return s.Ring(ctx, One(base), start, end, highRes)
}

// CropExtendingOutsideOf is the single-structure form of CropExtendingOutside.
func (s *Service) CropExtendingOutsideOf(ctx context.Context, primary, cropFrom Structure, distance float64) (Volume, error) {
	return s.CropExtendingOutside(ctx, One(primary), One(cropFrom), distance)
}

// CropExtendingInsideOf is the single-structure form of CropExtendingInside.
func (s *Service) CropExtendingInsideOf(ctx context.Context, primary, cropFrom Structure, distance float64) (Volume, error) {
	return s.CropExtendingInside(ctx, One(primary), One(cropFrom), distance)
}

// UnionOf is the single-structure form of Union.
func (s *Service) UnionOf(ctx context.Context, a, b Structure) (Volume, error) {
	return s.Union(ctx, One(a), One(b))
}

// IntersectionOf is the single-structure form of Intersection.
func (s *Service) IntersectionOf(ctx context.Context, a, b Structure) (Volume, error) {
	return s.Intersection(ctx, One(a), One(b))
}

// SubtractionOf is the single-structure form of Subtraction.
func (s *Service) SubtractionOf(ctx context.Context, a, b Structure) (Volume, error) {
	return s.Subtraction(ctx, One(a), One(b))
}

// NonOverlapOf is the single-structure form of NonOverlap.
func (s *Service) NonOverlapOf(ctx context.Context, a, b Structure) (Volume, error) {
	return s.NonOverlap(ctx, One(a), One(b))
}

// Margin grows or shrinks the fold of the given structures by a uniform
// signed distance, decomposing past the engine's per-call limit.
func (s *Service) Margin(ctx context.Context, base []Structure, distance float64, highRes bool) (Volume, error) {
	if len(base) == 0 {
		return nil, nil
	}

	temps := NewTempSet(s.ws, s.logger)
	defer temps.Close(ctx)

	needed := NeedHighRes(highRes, base)
	sv, err := s.agg.Fold(ctx, base, needed, temps)
	if err != nil {
		return nil, err
	}
	return s.margin.Isotropic(ctx, sv, distance)
}

// AsymmetricMargin applies six per-axis margins to the fold of the given
// structures. Distances are magnitudes; o carries the direction.
func (s *Service) AsymmetricMargin(ctx context.Context, base []Structure, o Orientation, d AxisMargins, highRes bool) (Volume, error) {
	if len(base) == 0 {
		return nil, nil
	}

	temps := NewTempSet(s.ws, s.logger)
	defer temps.Close(ctx)

	needed := NeedHighRes(highRes, base)
	sv, err := s.agg.Fold(ctx, base, needed, temps)
	if err != nil {
		return nil, err
	}
	return s.margin.Asymmetric(ctx, sv, o, d)
}
