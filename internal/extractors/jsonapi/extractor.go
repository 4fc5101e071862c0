// Package jsonapi extracts event records from structured JSON payloads.
// Selectors are dot-separated field paths into the decoded document; the
// container path addresses the items array.
package jsonapi

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles JSON API content.
type Extractor struct{}

// New creates a new JSON API extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedKinds returns the fetch kinds this extractor handles.
func (e *Extractor) SupportedKinds() []domain.FetchKind {
	return []domain.FetchKind{domain.FetchStructuredAPI}
}

// Extract decodes the payload, walks to the items array and reads one
// record per item. Absent paths yield empty fields; a record with
// neither title nor link is dropped as noise.
func (e *Extractor) Extract(
	content *domain.RawContent, source domain.SourceDefinition,
) []domain.RawEventRecord {
	var doc any
	if err := json.Unmarshal(content.Body, &doc); err != nil {
		return nil
	}

	items, ok := lookup(doc, source.Selector(domain.SelectorContainer)).([]any)
	if !ok {
		return nil
	}

	records := make([]domain.RawEventRecord, 0, len(items))
	for _, item := range items {
		record := domain.RawEventRecord{
			SourceName:      source.Name,
			TitleText:       fieldString(item, source.Selector(domain.SelectorTitle)),
			DateText:        fieldString(item, source.Selector(domain.SelectorDate)),
			LocationText:    fieldString(item, source.Selector(domain.SelectorLocation)),
			DescriptionText: fieldString(item, source.Selector(domain.SelectorDescription)),
			CategoryText:    fieldString(item, source.Selector(domain.SelectorCategory)),
			LinkURL:         fieldString(item, source.Selector(domain.SelectorLink)),
		}
		if record.IsNoise() {
			continue
		}
		records = append(records, record)
	}

	return records
}

// lookup walks a dot-separated path into the decoded document.
// An empty path returns the document itself; a path through anything
// that is not an object returns nil.
func lookup(doc any, path string) any {
	if path == "" {
		return doc
	}

	current := doc
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = obj[part]
	}
	return current
}

// fieldString renders the value at the path as trimmed text.
func fieldString(item any, path string) string {
	if path == "" {
		return ""
	}

	switch val := lookup(item, path).(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
