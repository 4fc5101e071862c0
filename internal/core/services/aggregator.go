package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
	"github.com/vilabot/vilabot/internal/logger"
)

// indexedEvent carries the ordering provenance of one normalised event:
// the declaration index of its source and its extraction index within that
// source. Both survive the merge as ordering tie-breaks.
type indexedEvent struct {
	event  domain.Event
	srcIdx int
	recIdx int
}

// Aggregator fans one query out across the enabled sources and merges the
// results into a deterministic, deduplicated, filtered event set. Partial
// success is the expected steady state: each source's failure is captured
// into the result's SourceErrors and never aborts the run.
type Aggregator struct {
	fetcher    driven.Fetcher
	extractors driven.ExtractorRegistry
	normaliser driven.EventNormaliser
	settings   domain.AggregateSettings
}

// NewAggregator creates a new aggregator.
func NewAggregator(
	fetcher driven.Fetcher,
	extractors driven.ExtractorRegistry,
	normaliser driven.EventNormaliser,
	settings domain.AggregateSettings,
) *Aggregator {
	if settings.MaxConcurrency < 1 {
		settings.MaxConcurrency = 1
	}
	return &Aggregator{
		fetcher:    fetcher,
		extractors: extractors,
		normaliser: normaliser,
		settings:   settings,
	}
}

// Run executes one fan-out-merge-filter-order cycle. The sources slice
// must already be filtered to enabled definitions in declaration order.
// The reference clock resolves year-less dates during normalisation.
//
// The run carries one shared deadline; sources still in flight when it
// expires are recorded as timed out and the merge proceeds with whatever
// finished in time.
func (a *Aggregator) Run(
	ctx context.Context, intent domain.Intent, sources []domain.SourceDefinition, now time.Time,
) domain.AggregateResult {
	logger.Section("Aggregator Run")
	logger.Debug("Sources: %d, intent empty: %v", len(sources), intent.IsEmpty())

	result := domain.AggregateResult{
		Events:       []domain.Event{},
		SourceErrors: make(map[string]*domain.FetchError),
	}
	if len(sources) == 0 {
		return result
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if a.settings.Deadline > 0 {
		runCtx, cancel = context.WithTimeout(ctx, a.settings.Deadline)
		defer cancel()
	}

	perSource := make([][]indexedEvent, len(sources))
	perError := make([]*domain.FetchError, len(sources))

	var group errgroup.Group
	group.SetLimit(a.settings.MaxConcurrency)
	for i, source := range sources {
		group.Go(func() error {
			perSource[i], perError[i] = a.collect(runCtx, source, i, intent, now)
			return nil
		})
	}
	// Tasks record their own failures, so Wait never returns an error.
	_ = group.Wait()

	merged := a.merge(perSource)
	merged = filterByIntent(merged, intent)
	orderEvents(merged)

	for i, ferr := range perError {
		if ferr != nil {
			result.SourceErrors[sources[i].Name] = ferr
		}
	}
	result.Events = make([]domain.Event, len(merged))
	for i, ie := range merged {
		result.Events[i] = ie.event
	}

	logger.Debug("Merged %d events, %d source errors", len(result.Events), len(result.SourceErrors))
	return result
}

// collect runs one source's fetch-extract-normalise pipeline.
func (a *Aggregator) collect(
	ctx context.Context, source domain.SourceDefinition, srcIdx int, intent domain.Intent, now time.Time,
) ([]indexedEvent, *domain.FetchError) {
	content, ferr := a.fetchOnce(ctx, source, intent)
	if ferr != nil && a.settings.RetryTransient && ferr.Kind.Retryable() && ctx.Err() == nil {
		logger.Debug("Retrying %s after %s", source.Name, ferr.Kind)
		content, ferr = a.fetchOnce(ctx, source, intent)
	}
	if ferr != nil {
		logger.Warn("Source %s failed: %v", source.Name, ferr)
		return nil, ferr
	}

	records, err := a.extractors.Extract(content, source)
	if err != nil {
		logger.Warn("Source %s has no extractor: %v", source.Name, err)
		return nil, &domain.FetchError{
			SourceName: source.Name,
			Kind:       domain.FetchUnreachable,
			Err:        err,
		}
	}

	events := make([]indexedEvent, 0, len(records))
	for recIdx, record := range records {
		events = append(events, indexedEvent{
			event:  a.normaliser.Normalise(record, now),
			srcIdx: srcIdx,
			recIdx: recIdx,
		})
	}
	logger.Debug("Source %s contributed %d records", source.Name, len(events))
	return events, nil
}

// fetchOnce makes exactly one fetch attempt and shapes the failure.
func (a *Aggregator) fetchOnce(
	ctx context.Context, source domain.SourceDefinition, intent domain.Intent,
) (*domain.RawContent, *domain.FetchError) {
	content, err := a.fetcher.Fetch(ctx, source, intent)
	if err == nil {
		return content, nil
	}
	if ferr, ok := err.(*domain.FetchError); ok {
		return nil, ferr
	}
	return nil, &domain.FetchError{
		SourceName: source.Name,
		Kind:       domain.FetchUnreachable,
		Err:        err,
	}
}

// merge flattens per-source results in declaration order and deduplicates
// by event ID. A duplicate keeps its first-seen position; its payload is
// upgraded when a later variant carries more populated fields.
func (a *Aggregator) merge(perSource [][]indexedEvent) []indexedEvent {
	merged := make([]indexedEvent, 0)
	position := make(map[string]int)

	for _, events := range perSource {
		for _, ie := range events {
			if pos, seen := position[ie.event.ID]; seen {
				if ie.event.Richness() > merged[pos].event.Richness() {
					merged[pos].event = ie.event
				}
				continue
			}
			position[ie.event.ID] = len(merged)
			merged = append(merged, ie)
		}
	}
	return merged
}

// filterByIntent applies the date-range, location and category filters.
// Events whose date never parsed are kept by the date filter: dropping
// them would silently lose valid but unparseable events.
func filterByIntent(events []indexedEvent, intent domain.Intent) []indexedEvent {
	if intent.IsEmpty() {
		return events
	}

	kept := events[:0]
	for _, ie := range events {
		if matchesIntent(ie.event, intent) {
			kept = append(kept, ie)
		}
	}
	return kept
}

func matchesIntent(event domain.Event, intent domain.Intent) bool {
	if intent.Dates != nil && !intent.Dates.IsZero() &&
		event.DateStatus.HasTime() && event.StartTime != nil &&
		!intent.Dates.Contains(*event.StartTime) {
		return false
	}
	if !substringMatch(event.Location, intent.Location) {
		return false
	}
	if !substringMatch(event.Category, intent.Category) {
		return false
	}
	return true
}

// substringMatch reports a case-insensitive substring match. An empty
// wanted value matches everything; an event without the field is never
// dropped for lacking it.
func substringMatch(have, want string) bool {
	if want == "" || have == "" {
		return true
	}
	return strings.Contains(strings.ToLower(have), strings.ToLower(want))
}

// orderEvents sorts ascending by start time with no-time events after all
// resolved ones, tie-broken by source declaration order then extraction
// order. The comparator is total, so the result is a pure function of the
// collected set regardless of concurrent completion order.
func orderEvents(events []indexedEvent) {
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		switch {
		case a.event.StartTime != nil && b.event.StartTime != nil:
			if !a.event.StartTime.Equal(*b.event.StartTime) {
				return a.event.StartTime.Before(*b.event.StartTime)
			}
		case a.event.StartTime != nil:
			return true
		case b.event.StartTime != nil:
			return false
		}
		if a.srcIdx != b.srcIdx {
			return a.srcIdx < b.srcIdx
		}
		return a.recIdx < b.recIdx
	})
}
