package domain

import "strings"

// FetchKind identifies how a source's content is retrieved.
type FetchKind string

// Available fetch kinds.
const (
	// FetchStaticHTML fetches one fixed page and extracts events
	// from its markup.
	FetchStaticHTML FetchKind = "static_html"

	// FetchSearchURLTemplate substitutes query keywords into a search
	// URL template before fetching and extracting markup.
	FetchSearchURLTemplate FetchKind = "search_url_template"

	// FetchStructuredAPI fetches a JSON endpoint and reads events from
	// structured fields addressed by path selectors.
	FetchStructuredAPI FetchKind = "structured_api"

	// FetchICalFeed fetches an iCalendar feed and reads events from its
	// VEVENT blocks.
	FetchICalFeed FetchKind = "ical_feed"
)

// KeywordsPlaceholder is the token in a search URL template replaced with
// the escaped query keywords at fetch time.
const KeywordsPlaceholder = "{keywords}"

// IsValid returns true if the fetch kind is recognised.
func (k FetchKind) IsValid() bool {
	switch k {
	case FetchStaticHTML, FetchSearchURLTemplate, FetchStructuredAPI, FetchICalFeed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k FetchKind) String() string {
	return string(k)
}

// RequiresSelectors returns true if the kind locates event fields through a
// selector map. iCalendar feeds carry their field contract in the VEVENT
// grammar itself and need no selectors.
func (k FetchKind) RequiresSelectors() bool {
	switch k {
	case FetchStaticHTML, FetchSearchURLTemplate, FetchStructuredAPI:
		return true
	default:
		return false
	}
}

// UsesSearchTemplate returns true if the kind builds its request URL from
// the search URL template rather than the base URL.
func (k FetchKind) UsesSearchTemplate() bool {
	return k == FetchSearchURLTemplate
}

// Description returns a human-readable description of the fetch kind.
func (k FetchKind) Description() string {
	switch k {
	case FetchStaticHTML:
		return "Static HTML page"
	case FetchSearchURLTemplate:
		return "Search URL with keyword substitution"
	case FetchStructuredAPI:
		return "Structured JSON API"
	case FetchICalFeed:
		return "iCalendar feed"
	default:
		return "Unknown"
	}
}

// Selector field names understood by the extractors.
const (
	// SelectorContainer locates the repeating element holding one event.
	SelectorContainer = "container"

	// SelectorTitle locates the event title within a container.
	SelectorTitle = "title"

	// SelectorDate locates the date text within a container.
	SelectorDate = "date"

	// SelectorLocation locates the place text within a container.
	SelectorLocation = "location"

	// SelectorDescription locates the description within a container.
	SelectorDescription = "description"

	// SelectorLink locates the event link within a container.
	SelectorLink = "link"

	// SelectorCategory locates the category tag within a container.
	SelectorCategory = "category"
)

// SourceDefinition describes one external event provider.
// Definitions are loaded once at process start and never mutated afterwards;
// changing a source requires a fresh registry load.
type SourceDefinition struct {
	// Name uniquely identifies the source within the registry.
	Name string

	// Kind selects the fetch strategy.
	Kind FetchKind

	// BaseURL is the page or endpoint fetched for kinds that do not
	// substitute keywords.
	BaseURL string

	// SearchURLTemplate is the URL pattern containing a {keywords}
	// placeholder. Required when Kind is FetchSearchURLTemplate.
	SearchURLTemplate string

	// Selectors maps field names (container, title, date, location,
	// description, link, category) to selector expressions. CSS selectors
	// for markup sources, dot-separated field paths for structured API
	// sources.
	Selectors map[string]string

	// Enabled gates the source. Disabled sources are never fetched.
	Enabled bool
}

// Selector returns the selector expression for a field, or the empty string
// when the source does not define one.
func (s *SourceDefinition) Selector(field string) string {
	if s.Selectors == nil {
		return ""
	}
	return strings.TrimSpace(s.Selectors[field])
}

// HasSearchPlaceholder reports whether the search URL template contains the
// {keywords} placeholder.
func (s *SourceDefinition) HasSearchPlaceholder() bool {
	return strings.Contains(s.SearchURLTemplate, KeywordsPlaceholder)
}
