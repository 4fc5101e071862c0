package services

import (
	"fmt"
	"time"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
	"github.com/vilabot/vilabot/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider = "llm.provider"
	keyLLMModel    = "llm.model"
	keyLLMBaseURL  = "llm.base_url"
	keyLLMAPIKey   = "llm.api_key"

	keyFetchTimeout     = "fetch.timeout"
	keyFetchMaxBody     = "fetch.max_body_bytes"
	keyFetchUserAgent   = "fetch.user_agent"
	keyFetchRatePerHost = "fetch.rate_per_host"
	keyFetchBurst       = "fetch.burst"

	keyAggConcurrency = "aggregate.max_concurrency"
	keyAggDeadline    = "aggregate.deadline"
	keyAggRetry       = "aggregate.retry_transient"

	keyPipeIntentTimeout = "pipeline.intent_timeout"
	keyPipeSynthTimeout  = "pipeline.synthesis_timeout"
	keyPipeMaxEvents     = "pipeline.max_events_for_synthesis"

	keyCatalogPath = "catalog.path"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Fetch: domain.FetchSettings{
			Timeout:      s.getDuration(keyFetchTimeout, defaults.Fetch.Timeout),
			MaxBodyBytes: int64(s.getInt(keyFetchMaxBody, int(defaults.Fetch.MaxBodyBytes))),
			UserAgent:    s.getString(keyFetchUserAgent, defaults.Fetch.UserAgent),
			RatePerHost:  s.getFloat(keyFetchRatePerHost, defaults.Fetch.RatePerHost),
			Burst:        s.getInt(keyFetchBurst, defaults.Fetch.Burst),
		},
		Aggregate: domain.AggregateSettings{
			MaxConcurrency: s.getInt(keyAggConcurrency, defaults.Aggregate.MaxConcurrency),
			Deadline:       s.getDuration(keyAggDeadline, defaults.Aggregate.Deadline),
			RetryTransient: s.getBool(keyAggRetry, defaults.Aggregate.RetryTransient),
		},
		Pipeline: domain.PipelineSettings{
			IntentTimeout:         s.getDuration(keyPipeIntentTimeout, defaults.Pipeline.IntentTimeout),
			SynthesisTimeout:      s.getDuration(keyPipeSynthTimeout, defaults.Pipeline.SynthesisTimeout),
			MaxEventsForSynthesis: s.getInt(keyPipeMaxEvents, defaults.Pipeline.MaxEventsForSynthesis),
		},
		CatalogPath: s.getString(keyCatalogPath, defaults.CatalogPath),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	if err := s.configStore.Set(keyFetchTimeout, settings.Fetch.Timeout.String()); err != nil {
		return fmt.Errorf("save fetch timeout: %w", err)
	}
	if err := s.configStore.Set(keyFetchMaxBody, settings.Fetch.MaxBodyBytes); err != nil {
		return fmt.Errorf("save fetch max_body_bytes: %w", err)
	}
	if err := s.configStore.Set(keyFetchUserAgent, settings.Fetch.UserAgent); err != nil {
		return fmt.Errorf("save fetch user_agent: %w", err)
	}
	if err := s.configStore.Set(keyFetchRatePerHost, settings.Fetch.RatePerHost); err != nil {
		return fmt.Errorf("save fetch rate_per_host: %w", err)
	}
	if err := s.configStore.Set(keyFetchBurst, settings.Fetch.Burst); err != nil {
		return fmt.Errorf("save fetch burst: %w", err)
	}

	if err := s.configStore.Set(keyAggConcurrency, settings.Aggregate.MaxConcurrency); err != nil {
		return fmt.Errorf("save aggregate max_concurrency: %w", err)
	}
	if err := s.configStore.Set(keyAggDeadline, settings.Aggregate.Deadline.String()); err != nil {
		return fmt.Errorf("save aggregate deadline: %w", err)
	}
	if err := s.configStore.Set(keyAggRetry, settings.Aggregate.RetryTransient); err != nil {
		return fmt.Errorf("save aggregate retry_transient: %w", err)
	}

	if err := s.configStore.Set(keyPipeIntentTimeout, settings.Pipeline.IntentTimeout.String()); err != nil {
		return fmt.Errorf("save pipeline intent_timeout: %w", err)
	}
	if err := s.configStore.Set(keyPipeSynthTimeout, settings.Pipeline.SynthesisTimeout.String()); err != nil {
		return fmt.Errorf("save pipeline synthesis_timeout: %w", err)
	}
	if err := s.configStore.Set(keyPipeMaxEvents, settings.Pipeline.MaxEventsForSynthesis); err != nil {
		return fmt.Errorf("save pipeline max_events_for_synthesis: %w", err)
	}

	if settings.CatalogPath != "" {
		if err := s.configStore.Set(keyCatalogPath, settings.CatalogPath); err != nil {
			return fmt.Errorf("save catalog path: %w", err)
		}
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		defaults := domain.DefaultLLMModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.LLM.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		// Local providers need a base URL
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.LLM.BaseURL = ""
	}

	// Set API key
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks if current settings are coherent.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.LLM.Provider != "" && !settings.LLM.Provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", settings.LLM.Provider)
	}
	if settings.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", settings.Fetch.Timeout)
	}
	if settings.Fetch.MaxBodyBytes <= 0 {
		return fmt.Errorf("fetch max body size must be positive, got %d", settings.Fetch.MaxBodyBytes)
	}
	if settings.Aggregate.MaxConcurrency < 1 {
		return fmt.Errorf("aggregate concurrency must be at least 1, got %d", settings.Aggregate.MaxConcurrency)
	}
	if settings.Aggregate.Deadline <= 0 {
		return fmt.Errorf("aggregate deadline must be positive, got %s", settings.Aggregate.Deadline)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
