package core

import (
	"fmt"

	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	LoggedIn bool   `json:"logged_in"`
	APIType  string `json:"api_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	apiType := fmt.Sprintf("%T", s.api)
	if comp, ok := s.api.(introspection.Component); ok {
		apiType = comp.ComponentType()
	}

	return ServiceState{
		LoggedIn: s.session.Token() != "",
		APIType:  apiType,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
