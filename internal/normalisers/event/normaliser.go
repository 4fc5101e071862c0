// Package event normalises raw scraped records into canonical events.
package event

import (
	"strings"
	"time"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.EventNormaliser = (*Normaliser)(nil)

// MaxDescriptionRunes caps the normalised description length.
const MaxDescriptionRunes = 300

// Normaliser converts raw records into canonical events.
type Normaliser struct{}

// New creates a new event normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise builds the canonical event for one raw record.
// Free-text fields are whitespace-collapsed, the category is lower-cased
// and the description is truncated. Date parsing is best effort: text
// that no pattern understands leaves the event with an unparsed status
// and the original text preserved.
func (n *Normaliser) Normalise(raw domain.RawEventRecord, now time.Time) domain.Event {
	title := collapseWhitespace(raw.TitleText)
	dateText := collapseWhitespace(raw.DateText)

	event := domain.Event{
		ID:          domain.EventFingerprint(raw.SourceName, raw.LinkURL, title, dateText),
		Title:       title,
		Description: truncateRunes(collapseWhitespace(raw.DescriptionText), MaxDescriptionRunes),
		Location:    collapseWhitespace(raw.LocationText),
		Category:    strings.ToLower(collapseWhitespace(raw.CategoryText)),
		DateStatus:  domain.DateUnparsed,
		RawDateText: dateText,
		SourceName:  raw.SourceName,
		SourceURL:   raw.LinkURL,
	}

	if start, status := parseDate(dateText, now); status != domain.DateUnparsed {
		event.StartTime = &start
		event.DateStatus = status
		if status == domain.DateParsed {
			event.RawDateText = ""
		}
	}

	return event
}

// collapseWhitespace trims the text and folds internal whitespace runs,
// newlines included, into single spaces.
func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// truncateRunes cuts the text at max runes, never mid-rune.
func truncateRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
