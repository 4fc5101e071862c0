package domain

import (
	"crypto/sha1" //nolint:gosec // G505: fingerprinting, not cryptography.
	"encoding/hex"
	"time"
)

// DateParseStatus grades how much of a scraped date the normaliser
// understood.
type DateParseStatus string

// Available date parse statuses.
const (
	// DateParsed means the start time was fully resolved.
	DateParsed DateParseStatus = "parsed"

	// DatePartialText means the start time was inferred from an incomplete
	// date, such as a day and month with no year.
	DatePartialText DateParseStatus = "partial"

	// DateUnparsed means the text matched no known pattern. The original
	// text is kept on the event for diagnostics.
	DateUnparsed DateParseStatus = "unparsed"
)

// String returns the string representation.
func (s DateParseStatus) String() string {
	return string(s)
}

// HasTime reports whether the status implies a resolved start time.
func (s DateParseStatus) HasTime() bool {
	return s == DateParsed || s == DatePartialText
}

// Event is the canonical cross-source event shape used for merging,
// filtering and response synthesis. Events live only for the duration of
// one query.
type Event struct {
	// ID is a stable fingerprint of the event's identity fields,
	// unique within one aggregator run.
	ID string

	// Title is the normalised title. Never nil, may be empty.
	Title string

	// Description is the normalised description, truncated for display.
	Description string

	// StartTime is the resolved start instant. Nil when the date text
	// could not be resolved.
	StartTime *time.Time

	// DateStatus grades the date resolution.
	DateStatus DateParseStatus

	// RawDateText preserves the scraped date text when it was not fully
	// parsed. Empty once the date resolved to a Parsed start time.
	RawDateText string

	// Location is the normalised place text, empty when the source gave
	// none.
	Location string

	// Category is carried only when the source data states one.
	Category string

	// SourceName names the definition the event came from.
	SourceName string

	// SourceURL is the absolute link to the event page, when known.
	SourceURL string
}

// EventFingerprint derives the stable event ID. Events with a link are
// identified by source and link; events without one fall back to source,
// title and date text.
func EventFingerprint(sourceName, linkURL, titleText, dateText string) string {
	var key string
	if linkURL != "" {
		key = sourceName + "|" + linkURL
	} else {
		key = sourceName + "|" + titleText + "|" + dateText
	}
	sum := sha1.Sum([]byte(key)) //nolint:gosec // G401: fingerprinting, not cryptography.
	return hex.EncodeToString(sum[:])
}

// Richness counts the populated descriptive fields. When two events share
// an ID, the merge keeps the richer variant.
func (e Event) Richness() int {
	n := 0
	for _, field := range []string{e.Title, e.Description, e.Location, e.Category, e.SourceURL} {
		if field != "" {
			n++
		}
	}
	if e.StartTime != nil {
		n++
	}
	return n
}
