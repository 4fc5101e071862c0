package driven

import (
	"context"
	"time"

	"github.com/vilabot/vilabot/internal/core/domain"
)

// IntentExtractor is the external collaborator that turns raw query text
// into a structured Intent. The reference time lets the collaborator
// resolve relative phrases ("this weekend") into absolute instants; the
// core itself never does date-phrase inference.
//
// All failures surface as *domain.CollaboratorError. The pipeline
// degrades malformed output to the empty Intent and fails the stage on
// transport errors and timeouts.
type IntentExtractor interface {
	// Extract interprets the query text.
	Extract(ctx context.Context, query string, now time.Time) (domain.Intent, error)
}

// AnswerSynthesiser is the external collaborator that writes the final
// natural-language answer from the gathered evidence. Failures surface as
// *domain.CollaboratorError and leave the caller with the raw event set.
type AnswerSynthesiser interface {
	// Synthesise writes the answer for the query given the intent, the
	// filtered events, and the per-source failure context.
	Synthesise(ctx context.Context, query string, intent domain.Intent, events []domain.Event, sourceErrors map[string]*domain.FetchError) (string, error)
}
