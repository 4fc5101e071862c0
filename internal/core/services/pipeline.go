package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
	"github.com/vilabot/vilabot/internal/core/ports/driving"
	"github.com/vilabot/vilabot/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.QueryService = (*Pipeline)(nil)

// Pipeline is the query orchestrator: a state machine walking one query
// through Received, IntentExtracted, Aggregated and Synthesised to Done.
// A collaborator failure moves the run to a terminal failed stage, but the
// result keeps whatever partial data exists at that point.
type Pipeline struct {
	registry    driving.SourceRegistry
	aggregator  *Aggregator
	intents     driven.IntentExtractor
	synthesiser driven.AnswerSynthesiser
	settings    domain.PipelineSettings

	// clock is the reference time for one run; tests pin it.
	clock func() time.Time
}

// NewPipeline creates a new query pipeline.
// The intent extractor and answer synthesiser are optional (can be nil):
// without them queries run as an unfiltered browse and return events
// without a synthesised answer.
func NewPipeline(
	registry driving.SourceRegistry,
	aggregator *Aggregator,
	intents driven.IntentExtractor,
	synthesiser driven.AnswerSynthesiser,
	settings domain.PipelineSettings,
) *Pipeline {
	return &Pipeline{
		registry:    registry,
		aggregator:  aggregator,
		intents:     intents,
		synthesiser: synthesiser,
		settings:    settings,
		clock:       time.Now,
	}
}

// HandleQuery runs the full pipeline for one query.
func (p *Pipeline) HandleQuery(ctx context.Context, text string) (*domain.QueryResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("handle query: %w", domain.ErrInvalidInput)
	}

	now := p.clock()
	result := &domain.QueryResult{
		ID:           uuid.NewString(),
		Query:        text,
		Events:       []domain.Event{},
		SourceErrors: map[string]*domain.FetchError{},
	}

	stage := domain.StageReceived
	logger.Section("Query Pipeline")
	logger.Debug("Run %s: %s (%q)", result.ID, stage, text)

	intent, err := p.extractIntent(ctx, text, now)
	if err != nil {
		result.FailedStage = domain.StageIntentExtracted
		return result, fmt.Errorf("extract intent: %w", err)
	}
	result.Intent = intent
	stage = domain.StageIntentExtracted
	logger.Debug("Run %s: %s", result.ID, stage)

	sources := p.registry.ListEnabled()
	result.SourcesQueried = len(sources)
	aggregate := p.aggregator.Run(ctx, intent, sources, now)
	result.Events = aggregate.Events
	result.SourceErrors = aggregate.SourceErrors
	result.EventsFound = len(aggregate.Events)
	if ctx.Err() != nil {
		// The caller abandoned the query mid-run; the aggregate holds only
		// cancellation noise.
		result.FailedStage = domain.StageAggregated
		return result, fmt.Errorf("aggregate: %w", ctx.Err())
	}
	stage = domain.StageAggregated
	logger.Debug("Run %s: %s (%d events, %d source errors)",
		result.ID, stage, result.EventsFound, len(result.SourceErrors))

	answer, err := p.synthesise(ctx, text, intent, aggregate)
	if err != nil {
		logger.Warn("Run %s: synthesis failed, returning raw events: %v", result.ID, err)
		result.FailedStage = domain.StageSynthesised
		return result, nil
	}
	result.Answer = answer
	stage = domain.StageDone
	logger.Debug("Run %s: %s", result.ID, stage)

	return result, nil
}

// extractIntent drives the Received -> IntentExtracted transition.
// A malformed collaborator response degrades to the empty intent; only
// transport failures and timeouts fail the stage.
func (p *Pipeline) extractIntent(ctx context.Context, text string, now time.Time) (domain.Intent, error) {
	if p.intents == nil {
		logger.Debug("No intent extractor configured, browsing unfiltered")
		return domain.Intent{}, nil
	}

	ictx := ctx
	var cancel context.CancelFunc
	if p.settings.IntentTimeout > 0 {
		ictx, cancel = context.WithTimeout(ctx, p.settings.IntentTimeout)
		defer cancel()
	}

	intent, err := p.intents.Extract(ictx, text, now)
	if err == nil {
		return intent, nil
	}

	var cerr *domain.CollaboratorError
	if errors.As(err, &cerr) && cerr.Kind == domain.CollaboratorMalformed {
		logger.Warn("Intent output malformed, degrading to empty intent: %v", err)
		return domain.Intent{}, nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = &domain.CollaboratorError{
			Stage: domain.StageIntentExtracted,
			Kind:  domain.CollaboratorTimeout,
			Err:   err,
		}
	}
	return domain.Intent{}, err
}

// synthesise drives the Aggregated -> Synthesised transition. At most
// MaxEventsForSynthesis events are quoted to the collaborator; the result
// set itself is never truncated.
func (p *Pipeline) synthesise(
	ctx context.Context, text string, intent domain.Intent, aggregate domain.AggregateResult,
) (string, error) {
	if p.synthesiser == nil {
		logger.Debug("No answer synthesiser configured, returning events only")
		return "", nil
	}

	sctx := ctx
	var cancel context.CancelFunc
	if p.settings.SynthesisTimeout > 0 {
		sctx, cancel = context.WithTimeout(ctx, p.settings.SynthesisTimeout)
		defer cancel()
	}

	events := aggregate.Events
	if max := p.settings.MaxEventsForSynthesis; max > 0 && len(events) > max {
		events = events[:max]
	}

	answer, err := p.synthesiser.Synthesise(sctx, text, intent, events, aggregate.SourceErrors)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &domain.CollaboratorError{
				Stage: domain.StageSynthesised,
				Kind:  domain.CollaboratorTimeout,
				Err:   err,
			}
		}
		return "", err
	}
	return answer, nil
}
