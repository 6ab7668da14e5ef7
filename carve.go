package carve

import (
	"log/slog"

	"github.com/voxtools/carve/internal/platform"
	"github.com/voxtools/carve/pkg/core"
)

// Version exposes the version of the library.
const Version = "0.2.0"

// --- Types ---

// Service is a public alias for the core operation service.
type Service = core.Service

// Structure is a public alias for the workspace structure handle.
type Structure = core.Structure

// Workspace is a public alias for the structure registry port.
type Workspace = core.Workspace

// Engine is a public alias for the geometry engine port.
type Engine = core.Engine

// Volume is a public alias for the opaque region value.
type Volume = core.Volume

// Kind is a public alias for the structure classification tag.
type Kind = core.Kind

// AxisMargins is a public alias for the six per-axis distances.
type AxisMargins = core.AxisMargins

// Orientation is a public alias for the margin direction tag.
type Orientation = core.Orientation

// Warning is a public alias for the non-fatal diagnostic type.
type Warning = core.Warning

// Orientation values.
const (
	Outer = core.Outer
	Inner = core.Inner
)

// Structure kinds.
const (
	KindOrgan     = core.KindOrgan
	KindTarget    = core.KindTarget
	KindExternal  = core.KindExternal
	KindControl   = core.KindControl
	KindAvoidance = core.KindAvoidance
)

// --- Configuration ---

// Option defines a functional option for configuring carve.
type Option = platform.Option

// WithWorkspace injects a custom workspace adapter (e.g. a geometry host bridge).
func WithWorkspace(ws core.Workspace) Option {
	return platform.WithWorkspace(ws)
}

// WithEngine injects a custom geometry engine.
func WithEngine(engine core.Engine) Option {
	return platform.WithEngine(engine)
}

// WithStepLimit overrides the engine's per-call margin limit.
func WithStepLimit(limit float64) Option {
	return platform.WithStepLimit(limit)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithWarningFunc routes non-fatal diagnostics to f instead of the logger.
func WithWarningFunc(f core.WarningFunc) Option {
	return platform.WithWarningFunc(f)
}

// --- Factory ---

// New creates a new carve Service.
func New(opts ...Option) (*core.Service, error) {
	return platform.New(opts...)
}

// --- Utils ---

// One wraps a single structure for the collection-taking operations.
func One(s Structure) []Structure {
	return core.One(s)
}
