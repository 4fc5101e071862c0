package driving

import "github.com/vilabot/vilabot/internal/core/domain"

// SourceRegistry exposes the loaded source definitions.
// The registry is immutable once loaded; changing sources requires a
// fresh load at process start.
type SourceRegistry interface {
	// List returns every definition in declaration order.
	List() []domain.SourceDefinition

	// ListEnabled returns the enabled definitions in declaration order.
	// Declaration order is the ordering tie-break for merged events.
	ListEnabled() []domain.SourceDefinition

	// Get returns the definition with the given name.
	// Returns domain.ErrSourceNotFound when it does not exist.
	Get(name string) (*domain.SourceDefinition, error)
}
