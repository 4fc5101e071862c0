// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Fetcher: Retrieves raw content from a source over the network
//   - ExtractorRegistry: Selects the extractor for a source's fetch kind
//   - Extractor: Produces raw event records from fetched content
//   - EventNormaliser: Maps raw records into the canonical Event schema
//   - SourceCatalog: Supplies source definitions at process start
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model transport. Without it, queries fall back
//     to an unfiltered browse with no synthesised answer.
//   - IntentExtractor / AnswerSynthesiser: The two collaborator roles built
//     on top of LLMService.
//   - PromptStore: Custom prompt templates. Without it, built-in defaults
//     are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, extractor, or normaliser package
package driven
