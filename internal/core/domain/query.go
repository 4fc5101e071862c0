package domain

// QueryStage identifies a step of the query pipeline.
type QueryStage string

// Pipeline stages, in execution order.
const (
	// StageReceived means the raw query text has been accepted.
	StageReceived QueryStage = "received"

	// StageIntentExtracted means the intent collaborator has answered.
	StageIntentExtracted QueryStage = "intent_extracted"

	// StageAggregated means the source fan-out has completed.
	StageAggregated QueryStage = "aggregated"

	// StageSynthesised means the answer collaborator has answered.
	StageSynthesised QueryStage = "synthesised"

	// StageDone means the pipeline finished cleanly.
	StageDone QueryStage = "done"
)

// String returns the string representation.
func (s QueryStage) String() string {
	return string(s)
}

// AggregateResult carries one run's merged events and per-source failures.
type AggregateResult struct {
	// Events is the deduplicated, filtered, ordered event set. Empty is a
	// valid outcome, not an error.
	Events []Event

	// SourceErrors maps a source name to the failure that kept it from
	// contributing. Sources that delivered content never appear here.
	SourceErrors map[string]*FetchError
}

// Degraded reports whether any source failed during the run.
func (r AggregateResult) Degraded() bool {
	return len(r.SourceErrors) > 0
}

// QueryResult is the outcome of one natural-language query.
type QueryResult struct {
	// ID identifies the pipeline run.
	ID string

	// Query is the original text as received.
	Query string

	// Intent is the structured interpretation used for fetching and
	// filtering.
	Intent Intent

	// Answer is the synthesised reply. Empty when synthesis failed or was
	// skipped.
	Answer string

	// Events is the evidence set backing the answer.
	Events []Event

	// SourceErrors reports sources that degraded during aggregation.
	SourceErrors map[string]*FetchError

	// SourcesQueried counts the enabled sources the run fanned out to.
	SourcesQueried int

	// EventsFound counts events after merge and filtering.
	EventsFound int

	// FailedStage names the stage a hard failure happened in.
	// Empty when the pipeline reached StageDone.
	FailedStage QueryStage
}

// Degraded reports whether the result is missing data from a source or a
// pipeline stage.
func (r QueryResult) Degraded() bool {
	return r.FailedStage != "" || len(r.SourceErrors) > 0
}
