// Package tui provides an interactive terminal user interface for Vilabot.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/vilabot/vilabot/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers natural-language event questions.
	Query driving.QueryService

	// Sources exposes the catalogued event sources.
	Sources driving.SourceRegistry
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(query driving.QueryService, sources driving.SourceRegistry) *Ports {
	return &Ports{
		Query:   query,
		Sources: sources,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Sources == nil {
		return ErrMissingSourceRegistry
	}
	return nil
}
