// Package html extracts event records from HTML pages using the CSS
// selectors declared on the source.
package html

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles HTML content.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedKinds returns the fetch kinds this extractor handles.
func (e *Extractor) SupportedKinds() []domain.FetchKind {
	return []domain.FetchKind{domain.FetchStaticHTML, domain.FetchSearchURLTemplate}
}

// Extract walks the container matches in document order and reads one
// record per match. Sub-selector misses yield empty fields; a record
// with neither title nor link is dropped as noise.
func (e *Extractor) Extract(
	content *domain.RawContent, source domain.SourceDefinition,
) []domain.RawEventRecord {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content.Body))
	if err != nil {
		return nil
	}

	// Relative links resolve against the URL the content actually came from.
	base, err := url.Parse(content.URL)
	if err != nil {
		base = nil
	}

	records := make([]domain.RawEventRecord, 0)
	doc.Find(source.Selector(domain.SelectorContainer)).Each(func(_ int, sel *goquery.Selection) {
		record := domain.RawEventRecord{
			SourceName:      source.Name,
			TitleText:       fieldText(sel, source.Selector(domain.SelectorTitle)),
			DateText:        fieldText(sel, source.Selector(domain.SelectorDate)),
			LocationText:    fieldText(sel, source.Selector(domain.SelectorLocation)),
			DescriptionText: fieldText(sel, source.Selector(domain.SelectorDescription)),
			CategoryText:    fieldText(sel, source.Selector(domain.SelectorCategory)),
			LinkURL:         linkURL(sel, source.Selector(domain.SelectorLink), base),
		}
		if record.IsNoise() {
			return
		}
		records = append(records, record)
	})

	return records
}

// fieldText returns the trimmed text of the first sub-selector match.
func fieldText(sel *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(sel.Find(selector).First().Text())
}

// linkURL reads the href of the first match, falling back to its text,
// and resolves it against the page URL.
func linkURL(sel *goquery.Selection, selector string, base *url.URL) string {
	if selector == "" {
		return ""
	}

	node := sel.Find(selector).First()
	href, ok := node.Attr("href")
	if !ok {
		href = node.Text()
	}
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	if base != nil {
		if ref, err := url.Parse(href); err == nil {
			return base.ResolveReference(ref).String()
		}
	}
	return href
}
