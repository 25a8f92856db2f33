package mcp

import (
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session owns the enrichment workflow.
	Session driving.SessionService

	// Requests exposes stored enrichment results.
	Requests driving.RequestService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	// Requests is optional; history resources degrade to empty lists
	return nil
}
