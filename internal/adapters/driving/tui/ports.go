// Package tui provides an interactive terminal user interface for leadlens.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session owns the sign-in, form and submission workflow.
	Session driving.SessionService

	// Requests exposes the signed-in subject's stored enrichment results.
	Requests driving.RequestService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(session driving.SessionService, requests driving.RequestService) *Ports {
	return &Ports{
		Session:  session,
		Requests: requests,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Requests == nil {
		return ErrMissingRequestService
	}
	return nil
}
