package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilabot/vilabot/internal/core/domain"
)

func TestNewDefaultRegistry(t *testing.T) {
	registry := NewDefaultRegistry()

	kinds := registry.SupportedKinds()
	assert.Contains(t, kinds, domain.FetchStaticHTML)
	assert.Contains(t, kinds, domain.FetchSearchURLTemplate)
	assert.Contains(t, kinds, domain.FetchStructuredAPI)
	assert.Contains(t, kinds, domain.FetchICalFeed)
}

func TestRegistry_Extract_Dispatch(t *testing.T) {
	registry := NewDefaultRegistry()

	source := domain.SourceDefinition{
		Name: "agenda",
		Kind: domain.FetchStaticHTML,
		Selectors: map[string]string{
			domain.SelectorContainer: "div.event",
			domain.SelectorTitle:     "h3",
		},
		Enabled: true,
	}
	content := &domain.RawContent{
		SourceName: "agenda",
		URL:        "https://example.org/agenda",
		Body:       []byte(`<div class="event"><h3>Festa Major</h3></div>`),
	}

	records, err := registry.Extract(content, source)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Festa Major", records[0].TitleText)
}

func TestRegistry_Extract_UnsupportedKind(t *testing.T) {
	registry := NewRegistry()

	source := domain.SourceDefinition{Name: "agenda", Kind: domain.FetchStaticHTML}
	_, err := registry.Extract(&domain.RawContent{}, source)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Contains(t, err.Error(), "agenda")
}
