package services

import (
	"fmt"
	"strings"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driving"
)

// Ensure Registry implements the interface.
var _ driving.SourceRegistry = (*Registry)(nil)

// Registry holds the validated source definitions for the process lifetime.
// It has no mutation API and is safe for concurrent reads from all source
// pipelines; changing sources requires a fresh NewRegistry at startup.
type Registry struct {
	sources []domain.SourceDefinition
	byName  map[string]int
}

// NewRegistry validates the definitions and builds the registry.
// The whole load is rejected with a *domain.ValidationError on the first
// malformed definition, so a bad source can never reach a query.
func NewRegistry(sources []domain.SourceDefinition) (*Registry, error) {
	byName := make(map[string]int, len(sources))
	owned := make([]domain.SourceDefinition, len(sources))

	for i, source := range sources {
		if err := validateSource(source); err != nil {
			return nil, err
		}
		if _, dup := byName[source.Name]; dup {
			return nil, &domain.ValidationError{
				SourceName: source.Name,
				Reason:     "duplicate source name",
			}
		}
		byName[source.Name] = i
		owned[i] = source
	}

	return &Registry{sources: owned, byName: byName}, nil
}

// validateSource enforces the per-kind definition contract.
func validateSource(source domain.SourceDefinition) error {
	reject := func(reason string) error {
		return &domain.ValidationError{SourceName: source.Name, Reason: reason}
	}

	if strings.TrimSpace(source.Name) == "" {
		return reject("missing name")
	}
	if !source.Kind.IsValid() {
		return reject(fmt.Sprintf("unknown fetch kind %q", source.Kind))
	}
	if source.Kind.UsesSearchTemplate() && !source.HasSearchPlaceholder() {
		if strings.TrimSpace(source.SearchURLTemplate) == "" {
			return reject("missing search url template")
		}
		return reject("search url template missing {keywords} placeholder")
	}

	// Disabled definitions may stay incomplete; they are never fetched.
	if !source.Enabled {
		return nil
	}

	if source.Kind.RequiresSelectors() && source.Selector(domain.SelectorContainer) == "" {
		return reject("missing container selector")
	}
	if !source.Kind.UsesSearchTemplate() && strings.TrimSpace(source.BaseURL) == "" {
		return reject("missing base url")
	}

	return nil
}

// List returns every definition in declaration order.
func (r *Registry) List() []domain.SourceDefinition {
	out := make([]domain.SourceDefinition, len(r.sources))
	copy(out, r.sources)
	return out
}

// ListEnabled returns the enabled definitions in declaration order.
func (r *Registry) ListEnabled() []domain.SourceDefinition {
	out := make([]domain.SourceDefinition, 0, len(r.sources))
	for _, source := range r.sources {
		if source.Enabled {
			out = append(out, source)
		}
	}
	return out
}

// Get returns the definition with the given name.
func (r *Registry) Get(name string) (*domain.SourceDefinition, error) {
	idx, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("get source %q: %w", name, domain.ErrSourceNotFound)
	}
	source := r.sources[idx]
	return &source, nil
}
