package mem

import (
	"context"
	"fmt"

	"github.com/voxtools/carve/pkg/core"
)

// Engine implements core.Engine symbolically. It enforces the per-call
// margin limit the way a real geometry host does, and keeps a journal of
// issued calls so tests and dry runs can inspect the decomposition.
type Engine struct {
	// Limit is the per-call margin limit. Zero means core.StepLimit.
	Limit float64

	// Calls records one entry per engine call, in order.
	Calls []string
}

// NewEngine returns an Engine with the default limit.
func NewEngine() *Engine {
	return &Engine{Limit: core.StepLimit}
}

func (e *Engine) limit() float64 {
	if e.Limit > 0 {
		return e.Limit
	}
	return core.StepLimit
}

func (e *Engine) record(format string, args ...any) {
	e.Calls = append(e.Calls, fmt.Sprintf(format, args...))
}

func asExpr(v core.Volume) (*Expr, error) {
	if expr, ok := v.(*Expr); ok && expr != nil {
		return expr, nil
	}
	return nil, fmt.Errorf("mem engine requires *mem.Expr volumes, got %T", v)
}

// Margin implements core.Engine.
func (e *Engine) Margin(ctx context.Context, v core.Volume, distance float64) (core.Volume, error) {
	if limit := e.limit(); distance > limit || distance < -limit {
		return nil, fmt.Errorf("margin distance %v beyond per-call limit %v", distance, limit)
	}
	expr, err := asExpr(v)
	if err != nil {
		return nil, err
	}
	e.record("margin:%g", distance)
	return &Expr{Op: "margin", Dist: distance, Args: []*Expr{expr}}, nil
}

// AsymmetricMargin implements core.Engine.
func (e *Engine) AsymmetricMargin(ctx context.Context, v core.Volume, o core.Orientation, d core.AxisMargins) (core.Volume, error) {
	limit := e.limit()
	for k, dk := range d {
		if dk < 0 || dk > limit {
			return nil, fmt.Errorf("axis %d distance %v outside [0, %v]", k, dk, limit)
		}
	}
	expr, err := asExpr(v)
	if err != nil {
		return nil, err
	}
	e.record("amargin:%s", o)
	return &Expr{Op: "amargin", Orient: o, Margins: d, Args: []*Expr{expr}}, nil
}

func (e *Engine) binary(op string, a, b core.Volume) (core.Volume, error) {
	ea, err := asExpr(a)
	if err != nil {
		return nil, err
	}
	eb, err := asExpr(b)
	if err != nil {
		return nil, err
	}
	e.record("%s", op)
	return &Expr{Op: op, Args: []*Expr{ea, eb}}, nil
}

// Or implements core.Engine.
func (e *Engine) Or(ctx context.Context, a, b core.Volume) (core.Volume, error) {
	return e.binary("or", a, b)
}

// And implements core.Engine.
func (e *Engine) And(ctx context.Context, a, b core.Volume) (core.Volume, error) {
	return e.binary("and", a, b)
}

// Sub implements core.Engine.
func (e *Engine) Sub(ctx context.Context, a, b core.Volume) (core.Volume, error) {
	return e.binary("sub", a, b)
}

// Xor implements core.Engine.
func (e *Engine) Xor(ctx context.Context, a, b core.Volume) (core.Volume, error) {
	return e.binary("xor", a, b)
}

// Not implements core.Engine.
func (e *Engine) Not(ctx context.Context, v core.Volume) (core.Volume, error) {
	expr, err := asExpr(v)
	if err != nil {
		return nil, err
	}
	e.record("not")
	return &Expr{Op: "not", Args: []*Expr{expr}}, nil
}

// ComponentType implements introspection.Component.
func (e *Engine) ComponentType() string {
	return "mem-engine"
}

var _ core.Engine = (*Engine)(nil)
