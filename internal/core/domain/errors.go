package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidSource indicates a source definition failed registry
	// validation and was rejected before use.
	ErrInvalidSource = errors.New("invalid source definition")

	// ErrSourceNotFound indicates a requested source is not in the registry.
	ErrSourceNotFound = errors.New("source not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown fetch kind or extractor type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Intent extraction and answer synthesis are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

// ValidationError reports a source definition rejected at registry load.
type ValidationError struct {
	// SourceName is the offending definition's name.
	SourceName string

	// Reason describes the violated rule.
	Reason string
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("source %q: %s", e.SourceName, e.Reason)
}

// Unwrap ties validation errors to ErrInvalidSource for errors.Is checks.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidSource
}

// FetchErrorKind classifies per-source fetch failures.
type FetchErrorKind string

// Available fetch error kinds.
const (
	// FetchUnreachable covers DNS and connection-level failures.
	FetchUnreachable FetchErrorKind = "unreachable"

	// FetchHTTPStatus covers non-2xx responses. The status code is carried
	// on the error.
	FetchHTTPStatus FetchErrorKind = "http_status"

	// FetchTimeout covers deadline expiry, per-request or run-wide.
	FetchTimeout FetchErrorKind = "timeout"

	// FetchTooLarge covers responses over the configured size cap.
	FetchTooLarge FetchErrorKind = "too_large"
)

// String returns the string representation.
func (k FetchErrorKind) String() string {
	return string(k)
}

// Retryable reports whether one retry may help. Only transport-level
// failures qualify; an HTTP status is a deliberate server answer.
func (k FetchErrorKind) Retryable() bool {
	return k == FetchUnreachable || k == FetchTimeout
}

// FetchError describes why one source's fetch failed. It is recorded per
// source in the aggregate result and never aborts the query.
type FetchError struct {
	// SourceName names the source that failed.
	SourceName string

	// Kind classifies the failure.
	Kind FetchErrorKind

	// StatusCode carries the HTTP status for FetchHTTPStatus failures.
	StatusCode int

	// Err is the underlying cause, when one exists.
	Err error
}

// Error returns the error message.
func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPStatus:
		return fmt.Sprintf("fetch %s: http status %d", e.SourceName, e.StatusCode)
	case FetchTooLarge:
		return fmt.Sprintf("fetch %s: response too large", e.SourceName)
	case FetchTimeout:
		return fmt.Sprintf("fetch %s: timed out", e.SourceName)
	default:
		return fmt.Sprintf("fetch %s: unreachable", e.SourceName)
	}
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// CollaboratorKind classifies failures of the external LLM collaborators.
type CollaboratorKind string

// Available collaborator failure kinds.
const (
	// CollaboratorTimeout means the collaborator exceeded its stage deadline.
	CollaboratorTimeout CollaboratorKind = "timeout"

	// CollaboratorMalformed means the collaborator answered with output
	// that could not be interpreted.
	CollaboratorMalformed CollaboratorKind = "malformed"

	// CollaboratorTransport covers connection and API-level failures.
	CollaboratorTransport CollaboratorKind = "transport"
)

// CollaboratorError reports an intent-extraction or answer-synthesis
// failure. The pipeline degrades from it rather than surfacing an opaque
// fatal response whenever usable partial data exists.
type CollaboratorError struct {
	// Stage is the pipeline stage the collaborator serves.
	Stage QueryStage

	// Kind classifies the failure.
	Kind CollaboratorKind

	// Err is the underlying cause, when one exists.
	Err error
}

// Error returns the error message.
func (e *CollaboratorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("collaborator %s: %s: %v", e.Stage, e.Kind, e.Err)
	}
	return fmt.Sprintf("collaborator %s: %s", e.Stage, e.Kind)
}

// Unwrap returns the underlying cause.
func (e *CollaboratorError) Unwrap() error {
	return e.Err
}
