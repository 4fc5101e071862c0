package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies a supported AI service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// RequiresAPIKey returns true if the provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	switch p {
	case AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// IsLocal returns true if the provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// AllLLMProviders returns providers usable for intent extraction and answer
// synthesis.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels maps each provider to its default model.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-5-nano",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// FetchSettings bounds outbound scraping requests.
type FetchSettings struct {
	// Timeout caps each outbound request.
	Timeout time.Duration

	// MaxBodyBytes caps a response body before the fetch is abandoned as
	// too large.
	MaxBodyBytes int64

	// UserAgent is sent on every request. Several event sites reject the
	// default Go client identification.
	UserAgent string

	// RatePerHost is the sustained request rate allowed per target host.
	RatePerHost float64

	// Burst is the per-host token bucket depth.
	Burst int
}

// AggregateSettings bounds the per-query source fan-out.
type AggregateSettings struct {
	// MaxConcurrency caps simultaneous source pipelines.
	MaxConcurrency int

	// Deadline caps one whole aggregator run. Sources still in flight when
	// it expires are recorded as timed out.
	Deadline time.Duration

	// RetryTransient allows one extra attempt per source after an
	// unreachable or timed-out fetch. HTTP status failures are never
	// retried.
	RetryTransient bool
}

// PipelineSettings bounds the orchestrator's collaborator calls.
type PipelineSettings struct {
	// IntentTimeout caps the intent-extraction call.
	IntentTimeout time.Duration

	// SynthesisTimeout caps the answer-synthesis call.
	SynthesisTimeout time.Duration

	// MaxEventsForSynthesis caps how many events are quoted to the answer
	// collaborator. The full filtered set is still returned to the caller.
	MaxEventsForSynthesis int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Fetch holds outbound request settings.
	Fetch FetchSettings

	// Aggregate holds fan-out settings.
	Aggregate AggregateSettings

	// Pipeline holds orchestrator settings.
	Pipeline PipelineSettings

	// CatalogPath locates the YAML source catalog.
	CatalogPath string
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; users set it up via the settings command.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{},
		Fetch: FetchSettings{
			Timeout:      8 * time.Second,
			MaxBodyBytes: 2 << 20,
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
				"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			RatePerHost: 2,
			Burst:       4,
		},
		Aggregate: AggregateSettings{
			MaxConcurrency: 4,
			Deadline:       20 * time.Second,
			RetryTransient: false,
		},
		Pipeline: PipelineSettings{
			IntentTimeout:         10 * time.Second,
			SynthesisTimeout:      30 * time.Second,
			MaxEventsForSynthesis: 20,
		},
	}
}
