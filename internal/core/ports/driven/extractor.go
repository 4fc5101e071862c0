package driven

import "github.com/vilabot/vilabot/internal/core/domain"

// Extractor produces raw event records from fetched content.
// Extraction never fails a whole batch: content where the container
// selector matches nothing yields an empty slice, and a missing
// sub-selector yields an empty field on the record.
type Extractor interface {
	// SupportedKinds returns the fetch kinds this extractor handles.
	SupportedKinds() []domain.FetchKind

	// Extract reads zero or more records out of the content using the
	// source's selectors. Records are returned in document order and
	// records with neither a title nor a link are dropped as noise.
	Extract(content *domain.RawContent, source domain.SourceDefinition) []domain.RawEventRecord
}

// ExtractorRegistry selects the extractor for a source's fetch kind.
type ExtractorRegistry interface {
	// Extract dispatches to the extractor registered for the source's
	// kind. Returns ErrUnsupportedType when no extractor handles it.
	Extract(content *domain.RawContent, source domain.SourceDefinition) ([]domain.RawEventRecord, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedKinds returns all fetch kinds with a registered extractor.
	SupportedKinds() []domain.FetchKind
}
