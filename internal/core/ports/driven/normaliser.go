package driven

import (
	"time"

	"github.com/vilabot/vilabot/internal/core/domain"
)

// EventNormaliser maps a raw scraped record into the canonical Event
// schema. Normalisation never returns an error: unparseable dates are
// graded through the event's DateStatus, not raised.
//
// The reference clock is passed in explicitly so relative and year-less
// dates resolve deterministically under test.
type EventNormaliser interface {
	// Normalise produces a best-effort Event from the record.
	Normalise(raw domain.RawEventRecord, now time.Time) domain.Event
}
