package mcp

import (
	"context"
	"fmt"

	"github.com/vilabot/vilabot/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	result *domain.QueryResult
	err    error
}

func (m *mockQueryService) HandleQuery(_ context.Context, _ string) (*domain.QueryResult, error) {
	return m.result, m.err
}

// mockSourceRegistry is a mock implementation of driving.SourceRegistry.
type mockSourceRegistry struct {
	sources []domain.SourceDefinition
}

func (m *mockSourceRegistry) List() []domain.SourceDefinition {
	return m.sources
}

func (m *mockSourceRegistry) ListEnabled() []domain.SourceDefinition {
	enabled := make([]domain.SourceDefinition, 0, len(m.sources))
	for _, src := range m.sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}
	return enabled
}

func (m *mockSourceRegistry) Get(name string) (*domain.SourceDefinition, error) {
	for i := range m.sources {
		if m.sources[i].Name == name {
			def := m.sources[i]
			return &def, nil
		}
	}
	return nil, fmt.Errorf("get source %q: %w", name, domain.ErrSourceNotFound)
}
