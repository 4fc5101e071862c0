package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFetchKind_IsValid tests fetch kind validation
func TestFetchKind_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		kind  FetchKind
		valid bool
	}{
		{"static html", FetchStaticHTML, true},
		{"search url template", FetchSearchURLTemplate, true},
		{"structured api", FetchStructuredAPI, true},
		{"ical feed", FetchICalFeed, true},
		{"empty", FetchKind(""), false},
		{"unknown", FetchKind("rss"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.kind.IsValid())
		})
	}
}

// TestFetchKind_RequiresSelectors tests the per-kind selector contract
func TestFetchKind_RequiresSelectors(t *testing.T) {
	assert.True(t, FetchStaticHTML.RequiresSelectors())
	assert.True(t, FetchSearchURLTemplate.RequiresSelectors())
	assert.True(t, FetchStructuredAPI.RequiresSelectors())
	assert.False(t, FetchICalFeed.RequiresSelectors())
}

// TestFetchKind_UsesSearchTemplate tests template-driven URL building
func TestFetchKind_UsesSearchTemplate(t *testing.T) {
	assert.True(t, FetchSearchURLTemplate.UsesSearchTemplate())
	assert.False(t, FetchStaticHTML.UsesSearchTemplate())
	assert.False(t, FetchStructuredAPI.UsesSearchTemplate())
	assert.False(t, FetchICalFeed.UsesSearchTemplate())
}

// TestFetchKind_Description tests human-readable descriptions
func TestFetchKind_Description(t *testing.T) {
	assert.Equal(t, "Static HTML page", FetchStaticHTML.Description())
	assert.Equal(t, "Unknown", FetchKind("rss").Description())
}

// TestSourceDefinition_Selector tests selector lookup
func TestSourceDefinition_Selector(t *testing.T) {
	source := SourceDefinition{
		Name: "agenda",
		Kind: FetchStaticHTML,
		Selectors: map[string]string{
			SelectorContainer: "div.event-card",
			SelectorTitle:     " h3.title ",
		},
	}

	assert.Equal(t, "div.event-card", source.Selector(SelectorContainer))
	assert.Equal(t, "h3.title", source.Selector(SelectorTitle), "selector should be trimmed")
	assert.Empty(t, source.Selector(SelectorDate))
}

// TestSourceDefinition_Selector_NilMap tests lookup with no selectors at all
func TestSourceDefinition_Selector_NilMap(t *testing.T) {
	source := SourceDefinition{Name: "feed", Kind: FetchICalFeed}

	assert.Empty(t, source.Selector(SelectorContainer))
}

// TestSourceDefinition_HasSearchPlaceholder tests placeholder detection
func TestSourceDefinition_HasSearchPlaceholder(t *testing.T) {
	with := SourceDefinition{SearchURLTemplate: "https://example.org/cerca?q={keywords}"}
	without := SourceDefinition{SearchURLTemplate: "https://example.org/cerca?q="}

	assert.True(t, with.HasSearchPlaceholder())
	assert.False(t, without.HasSearchPlaceholder())
}
