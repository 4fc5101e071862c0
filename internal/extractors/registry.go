package extractors

import (
	"fmt"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
	"github.com/vilabot/vilabot/internal/extractors/html"
	"github.com/vilabot/vilabot/internal/extractors/ics"
	"github.com/vilabot/vilabot/internal/extractors/jsonapi"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps fetch kinds to their extractors.
type Registry struct {
	byKind map[domain.FetchKind]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		byKind: make(map[domain.FetchKind]driven.Extractor),
	}
}

// NewDefaultRegistry creates a registry with all built-in extractors
// registered. Call this during application initialisation.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(html.New())
	registry.Register(jsonapi.New())
	registry.Register(ics.New())
	return registry
}

// Register adds an extractor for every kind it supports.
// A later registration for the same kind wins.
func (r *Registry) Register(extractor driven.Extractor) {
	for _, kind := range extractor.SupportedKinds() {
		r.byKind[kind] = extractor
	}
}

// Extract dispatches to the extractor registered for the source's kind.
func (r *Registry) Extract(
	content *domain.RawContent, source domain.SourceDefinition,
) ([]domain.RawEventRecord, error) {
	extractor, ok := r.byKind[source.Kind]
	if !ok {
		return nil, fmt.Errorf("extract %s: %w: %s", source.Name, domain.ErrUnsupportedType, source.Kind)
	}
	return extractor.Extract(content, source), nil
}

// SupportedKinds returns all fetch kinds with a registered extractor.
func (r *Registry) SupportedKinds() []domain.FetchKind {
	kinds := make([]domain.FetchKind, 0, len(r.byKind))
	for kind := range r.byKind {
		kinds = append(kinds, kind)
	}
	return kinds
}
