package platform

import (
	"github.com/voxtools/carve/pkg/adapters/mem"
	"github.com/voxtools/carve/pkg/core"
)

// New wires a core.Service from the given options. Unspecified collaborators
// fall back to the in-memory adapter, which keeps the zero-configuration
// path useful for tests and dry runs.
func New(opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	ws := o.workspace
	if ws == nil {
		ws = mem.NewWorkspace()
	}
	engine := o.engine
	if engine == nil {
		engine = mem.NewEngine()
	}

	service := core.NewService(ws, engine)
	if o.logger != nil {
		service.SetLogger(o.logger)
	}
	if o.warn != nil {
		service.SetWarningFunc(o.warn)
	}
	if o.stepLimit != core.StepLimit {
		if err := service.SetStepLimit(o.stepLimit); err != nil {
			return nil, err
		}
	}

	return service, nil
}
