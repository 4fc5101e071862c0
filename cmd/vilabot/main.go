// Command vilabot answers natural-language questions about events in
// Catalonia by consulting catalogued web sources.
package main

import (
	"fmt"
	"os"

	"github.com/vilabot/vilabot/internal/adapters/driven/ai"
	"github.com/vilabot/vilabot/internal/adapters/driven/assist"
	catalogfile "github.com/vilabot/vilabot/internal/adapters/driven/catalog/file"
	configfile "github.com/vilabot/vilabot/internal/adapters/driven/config/file"
	"github.com/vilabot/vilabot/internal/adapters/driven/webfetch"
	"github.com/vilabot/vilabot/internal/adapters/driving/cli"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
	"github.com/vilabot/vilabot/internal/core/services"
	"github.com/vilabot/vilabot/internal/extractors"
	"github.com/vilabot/vilabot/internal/normalisers/event"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Settings live in a TOML file under ~/.vilabot
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialise config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Without a configured LLM the assist collaborators stay nil and
	// queries run as unfiltered browses without a synthesised answer.
	var (
		intentExtractor   driven.IntentExtractor
		answerSynthesiser driven.AnswerSynthesiser
	)
	if settings.LLM.IsConfigured() {
		llmService, err := ai.CreateLLMService(&settings.LLM)
		if err != nil {
			return fmt.Errorf("create LLM service: %w", err)
		}

		promptStore, err := configfile.NewPromptStore("")
		if err != nil {
			return fmt.Errorf("initialise prompt store: %w", err)
		}

		extractor := assist.NewIntentExtractor(llmService)
		extractor.SetPromptStore(promptStore)
		intentExtractor = extractor

		synthesiser := assist.NewAnswerSynthesiser(llmService)
		synthesiser.SetPromptStore(promptStore)
		answerSynthesiser = synthesiser
	}

	// Source catalogue; a missing file yields an empty registry so a
	// fresh install can run before any sources are configured.
	catalog, err := catalogfile.NewCatalog(settings.CatalogPath)
	if err != nil {
		return fmt.Errorf("open source catalogue: %w", err)
	}

	definitions, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load source catalogue: %w", err)
	}

	registry, err := services.NewRegistry(definitions)
	if err != nil {
		return fmt.Errorf("build source registry: %w", err)
	}

	// Fan-out stack
	fetcher := webfetch.NewFetcher(settings.Fetch)
	aggregator := services.NewAggregator(
		fetcher,
		extractors.NewDefaultRegistry(),
		event.New(),
		settings.Aggregate,
	)

	pipeline := services.NewPipeline(
		registry,
		aggregator,
		intentExtractor,
		answerSynthesiser,
		settings.Pipeline,
	)

	cli.SetServices(cli.Services{
		Query:    pipeline,
		Sources:  registry,
		Settings: settingsService,
	})
	cli.SetTUIConfig(&cli.TUIConfig{
		QueryService:    pipeline,
		SourceRegistry:  registry,
		SettingsService: settingsService,
	})

	return cli.Execute()
}
