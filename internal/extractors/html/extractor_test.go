package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilabot/vilabot/internal/core/domain"
)

const agendaPage = `<html><body>
<div class="llistat">
  <article class="esdeveniment">
    <h3 class="titol">Festa Major de Vilanova</h3>
    <span class="data">22 d'agost de 2025</span>
    <span class="lloc">Plaça de la Vila</span>
    <p class="resum">Concerts, havaneres i castell de focs.</p>
    <a class="enllac" href="/agenda/festa-major">Més informació</a>
  </article>
  <article class="esdeveniment">
    <h3 class="titol">Correfoc dels Diables</h3>
    <span class="data">23 d'agost de 2025</span>
    <a class="enllac" href="https://diables.example.org/correfoc">Detalls</a>
  </article>
  <article class="esdeveniment">
    <p class="resum">Bloc publicitari sense títol ni enllaç</p>
  </article>
</div>
</body></html>`

func agendaSource() domain.SourceDefinition {
	return domain.SourceDefinition{
		Name: "agenda-vilanova",
		Kind: domain.FetchStaticHTML,
		Selectors: map[string]string{
			domain.SelectorContainer:   "article.esdeveniment",
			domain.SelectorTitle:       "h3.titol",
			domain.SelectorDate:        "span.data",
			domain.SelectorLocation:    "span.lloc",
			domain.SelectorDescription: "p.resum",
			domain.SelectorLink:        "a.enllac",
		},
		Enabled: true,
	}
}

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestSupportedKinds(t *testing.T) {
	kinds := New().SupportedKinds()

	assert.Contains(t, kinds, domain.FetchStaticHTML)
	assert.Contains(t, kinds, domain.FetchSearchURLTemplate)
	assert.Len(t, kinds, 2)
}

func TestExtract_DocumentOrder(t *testing.T) {
	content := &domain.RawContent{
		SourceName: "agenda-vilanova",
		URL:        "https://vilanova.example.org/agenda",
		Body:       []byte(agendaPage),
	}

	records := New().Extract(content, agendaSource())

	require.Len(t, records, 2, "the advert block has neither title nor link")
	assert.Equal(t, "Festa Major de Vilanova", records[0].TitleText)
	assert.Equal(t, "22 d'agost de 2025", records[0].DateText)
	assert.Equal(t, "Plaça de la Vila", records[0].LocationText)
	assert.Equal(t, "Concerts, havaneres i castell de focs.", records[0].DescriptionText)
	assert.Equal(t, "Correfoc dels Diables", records[1].TitleText)
	assert.Equal(t, "agenda-vilanova", records[0].SourceName)
}

func TestExtract_ResolvesRelativeLinks(t *testing.T) {
	content := &domain.RawContent{
		SourceName: "agenda-vilanova",
		URL:        "https://vilanova.example.org/agenda",
		Body:       []byte(agendaPage),
	}

	records := New().Extract(content, agendaSource())

	require.Len(t, records, 2)
	assert.Equal(t, "https://vilanova.example.org/agenda/festa-major", records[0].LinkURL)
	assert.Equal(t, "https://diables.example.org/correfoc", records[1].LinkURL, "absolute links pass through")
}

func TestExtract_MissingSubSelector(t *testing.T) {
	source := agendaSource()
	source.Selectors[domain.SelectorLocation] = "span.inexistent"

	content := &domain.RawContent{
		SourceName: "agenda-vilanova",
		URL:        "https://vilanova.example.org/agenda",
		Body:       []byte(agendaPage),
	}

	records := New().Extract(content, source)

	require.Len(t, records, 2)
	assert.Empty(t, records[0].LocationText, "a missing sub-selector yields an empty field")
	assert.NotEmpty(t, records[0].TitleText)
}

func TestExtract_UndeclaredSelectors(t *testing.T) {
	source := domain.SourceDefinition{
		Name: "titols",
		Kind: domain.FetchStaticHTML,
		Selectors: map[string]string{
			domain.SelectorContainer: "article.esdeveniment",
			domain.SelectorTitle:     "h3.titol",
		},
		Enabled: true,
	}

	content := &domain.RawContent{
		SourceName: "titols",
		URL:        "https://vilanova.example.org/agenda",
		Body:       []byte(agendaPage),
	}

	records := New().Extract(content, source)

	require.Len(t, records, 2)
	assert.Empty(t, records[0].DateText)
	assert.Empty(t, records[0].LinkURL)
}

func TestExtract_NoContainerMatches(t *testing.T) {
	content := &domain.RawContent{
		SourceName: "agenda-vilanova",
		URL:        "https://vilanova.example.org/agenda",
		Body:       []byte("<html><body><p>Cap esdeveniment</p></body></html>"),
	}

	records := New().Extract(content, agendaSource())

	assert.Empty(t, records)
}

func TestExtract_LinkTextFallback(t *testing.T) {
	page := `<div class="e"><h3>Aplec</h3><span class="url">https://aplec.example.org</span></div>`
	source := domain.SourceDefinition{
		Name: "aplecs",
		Kind: domain.FetchStaticHTML,
		Selectors: map[string]string{
			domain.SelectorContainer: "div.e",
			domain.SelectorTitle:     "h3",
			domain.SelectorLink:      "span.url",
		},
		Enabled: true,
	}

	records := New().Extract(&domain.RawContent{SourceName: "aplecs", Body: []byte(page)}, source)

	require.Len(t, records, 1)
	assert.Equal(t, "https://aplec.example.org", records[0].LinkURL)
}
