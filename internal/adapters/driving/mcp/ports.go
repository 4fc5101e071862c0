package mcp

import (
	"github.com/vilabot/vilabot/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers natural-language event queries.
	Query driving.QueryService

	// Sources exposes the loaded source definitions.
	Sources driving.SourceRegistry
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// Sources is optional; without it the source listings are empty
	return nil
}
