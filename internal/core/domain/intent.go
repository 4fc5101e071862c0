package domain

import (
	"strings"
	"time"
)

// DateRange bounds a query to events starting within [Start, End].
// Both instants arrive already resolved from the intent-extraction
// collaborator; the core never interprets relative phrases itself.
type DateRange struct {
	// Start is the inclusive lower bound. Zero means unbounded below.
	Start time.Time

	// End is the inclusive upper bound. Zero means unbounded above.
	End time.Time
}

// Contains reports whether t falls inside the range.
// A zero Start or End leaves that side unbounded.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Intent is the structured interpretation of a natural-language query.
// It is produced by the intent-extraction collaborator and consumed by the
// aggregator for fetching and filtering.
type Intent struct {
	// Location is an optional free-text place name.
	Location string

	// Dates optionally bounds events by start time.
	Dates *DateRange

	// Category is an optional tag from an open vocabulary,
	// such as "family" or "music".
	Category string

	// Keywords are search terms in query order, substituted verbatim into
	// per-source search URLs.
	Keywords []string
}

// IsEmpty reports whether the intent carries no filters at all.
// An empty intent is valid and means an unfiltered browse.
func (i Intent) IsEmpty() bool {
	return i.Location == "" && i.Category == "" && len(i.Keywords) == 0 &&
		(i.Dates == nil || i.Dates.IsZero())
}

// KeywordString joins the keywords with single spaces, the form substituted
// into search URL templates and quoted in prompts.
func (i Intent) KeywordString() string {
	return strings.Join(i.Keywords, " ")
}
