// Package mem provides the in-memory reference adapter: a workspace
// registry plus a symbolic geometry engine whose volumes are expression
// trees. The engine computes no contours; it records the calls that would be
// issued to a real geometry host, which makes it the natural backend for
// tests and for dry-running plans.
package mem

import (
	"fmt"
	"strings"

	"github.com/voxtools/carve/pkg/core"
)

// Expr is a symbolic core.Volume: the record of the engine calls that
// produced it.
type Expr struct {
	Op      string // "seed", "margin", "amargin", "or", "and", "sub", "xor", "not"
	Name    string // seed name, when Op == "seed"
	Dist    float64
	Orient  core.Orientation
	Margins core.AxisMargins
	Args    []*Expr
}

// Seed returns a leaf volume identified by name.
func Seed(name string) *Expr {
	return &Expr{Op: "seed", Name: name}
}

// String renders the expression in a compact functional form, e.g.
// "sub(margin(PTV,20),margin(PTV,10))".
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Op {
	case "seed":
		return e.Name
	case "margin":
		return fmt.Sprintf("margin(%s,%g)", e.Args[0], e.Dist)
	case "amargin":
		parts := make([]string, len(e.Margins))
		for i, d := range e.Margins {
			parts[i] = fmt.Sprintf("%g", d)
		}
		return fmt.Sprintf("amargin(%s,%s,[%s])", e.Args[0], e.Orient, strings.Join(parts, ","))
	case "not":
		return fmt.Sprintf("not(%s)", e.Args[0])
	default:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", e.Op, strings.Join(args, ","))
	}
}
