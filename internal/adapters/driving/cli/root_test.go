package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vilabot/vilabot/internal/core/domain"
)

// Shared mocks for CLI command tests.

type mockQueryService struct {
	lastQuestion string
}

func (m *mockQueryService) HandleQuery(_ context.Context, text string) (*domain.QueryResult, error) {
	m.lastQuestion = text
	start := time.Date(2025, 8, 23, 21, 0, 0, 0, time.UTC)
	return &domain.QueryResult{
		Query:  text,
		Answer: "Aquest cap de setmana hi ha un concert i un correfoc.",
		Events: []domain.Event{
			{
				ID:         "evt-1",
				Title:      "Concert de jazz",
				StartTime:  &start,
				Location:   "Vilanova i la Geltrú",
				SourceName: "agenda-cultural",
			},
			{
				ID:          "evt-2",
				Title:       "Correfoc",
				RawDateText: "diumenge a la nit",
				Location:    "Sitges",
				SourceName:  "surt-de-casa",
			},
		},
		SourcesQueried: 2,
		EventsFound:    2,
	}, nil
}

type mockQueryServiceError struct{}

func (m *mockQueryServiceError) HandleQuery(_ context.Context, _ string) (*domain.QueryResult, error) {
	return nil, errors.New("pipeline exploded")
}

type mockSourceRegistry struct{}

func (m *mockSourceRegistry) List() []domain.SourceDefinition {
	return []domain.SourceDefinition{
		{
			Name:              "agenda-cultural",
			Kind:              domain.FetchSearchURLTemplate,
			SearchURLTemplate: "https://agenda.cultura.gencat.cat/cerca?text={keywords}",
			Selectors: map[string]string{
				"event": "article.esdeveniment",
				"title": "h2.titol",
			},
			Enabled: true,
		},
		{
			Name:    "festa-catalunya",
			Kind:    domain.FetchStaticHTML,
			BaseURL: "https://www.festacatalunya.cat/agenda",
		},
	}
}

func (m *mockSourceRegistry) ListEnabled() []domain.SourceDefinition {
	all := m.List()
	enabled := make([]domain.SourceDefinition, 0, len(all))
	for _, def := range all {
		if def.Enabled {
			enabled = append(enabled, def)
		}
	}
	return enabled
}

func (m *mockSourceRegistry) Get(name string) (*domain.SourceDefinition, error) {
	for _, def := range m.List() {
		if def.Name == name {
			return &def, nil
		}
	}
	return nil, domain.ErrSourceNotFound
}

type mockSourceRegistryEmpty struct{}

func (m *mockSourceRegistryEmpty) List() []domain.SourceDefinition        { return nil }
func (m *mockSourceRegistryEmpty) ListEnabled() []domain.SourceDefinition { return nil }
func (m *mockSourceRegistryEmpty) Get(_ string) (*domain.SourceDefinition, error) {
	return nil, domain.ErrSourceNotFound
}

type mockSettingsService struct{}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	settings.LLM = domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		Model:    "llama3.2",
		BaseURL:  "http://localhost:11434",
	}
	settings.CatalogPath = "/tmp/sources.yml"
	return &settings, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return nil }

func (m *mockSettingsService) SetLLMProvider(_ domain.AIProvider, _, _ string) error { return nil }

func (m *mockSettingsService) Validate() error { return nil }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateLLMConfig() error { return nil }

// setupTestServices swaps the package services for mocks and returns a
// cleanup that restores the originals.
func setupTestServices() func() {
	oldQuery := queryService
	oldRegistry := sourceRegistry
	oldSettings := settingsService

	queryService = &mockQueryService{}
	sourceRegistry = &mockSourceRegistry{}
	settingsService = &mockSettingsService{}

	return func() {
		queryService = oldQuery
		sourceRegistry = oldRegistry
		settingsService = oldSettings
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "vilabot", rootCmd.Use)
}

func TestRootCmd_Short(t *testing.T) {
	assert.Equal(t, "Ask about events in Catalonia", rootCmd.Short)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "query")
	assert.Contains(t, commandNames, "sources")
	assert.Contains(t, commandNames, "settings")
	assert.Contains(t, commandNames, "tui")
	assert.Contains(t, commandNames, "mcp")
	assert.Contains(t, commandNames, "version")
}

func TestSetServices(t *testing.T) {
	oldQuery := queryService
	oldRegistry := sourceRegistry
	oldSettings := settingsService
	defer func() {
		queryService = oldQuery
		sourceRegistry = oldRegistry
		settingsService = oldSettings
	}()

	query := &mockQueryService{}
	registry := &mockSourceRegistry{}
	settings := &mockSettingsService{}

	SetServices(Services{
		Query:    query,
		Sources:  registry,
		Settings: settings,
	})

	assert.Equal(t, query, queryService)
	assert.Equal(t, registry, sourceRegistry)
	assert.Equal(t, settings, settingsService)
}

func TestRootCmd_Help(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "natural-language questions about events")
}
