package platform

import (
	"log/slog"

	"github.com/voxtools/carve/pkg/core"
)

// options holds the internal configuration for the carve service.
type options struct {
	workspace core.Workspace
	engine    core.Engine
	stepLimit float64
	logger    *slog.Logger
	warn      core.WarningFunc
}

// Option defines a functional option for configuring carve.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		stepLimit: core.StepLimit,
	}
}

// WithWorkspace injects a custom workspace adapter (e.g. a scripting API
// bridge). If omitted, the in-memory adapter is used.
func WithWorkspace(ws core.Workspace) Option {
	return func(o *options) {
		o.workspace = ws
	}
}

// WithEngine injects a custom geometry engine. If omitted, the in-memory
// trace engine is used.
func WithEngine(engine core.Engine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// WithStepLimit overrides the engine's per-call margin limit.
func WithStepLimit(limit float64) Option {
	return func(o *options) {
		o.stepLimit = limit
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithWarningFunc routes non-fatal diagnostics to f instead of the logger.
func WithWarningFunc(f core.WarningFunc) Option {
	return func(o *options) {
		o.warn = f
	}
}
