package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	StepLimit     float64 `json:"step_limit"`
	WorkspaceType string  `json:"workspace_type"`
	EngineType    string  `json:"engine_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	wsType := "workspace"
	if comp, ok := s.ws.(introspection.Component); ok {
		wsType = comp.ComponentType()
	}
	engType := "engine"
	if comp, ok := s.engine.(introspection.Component); ok {
		engType = comp.ComponentType()
	}

	return ServiceState{
		StepLimit:     s.margin.limit(),
		WorkspaceType: wsType,
		EngineType:    engType,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
