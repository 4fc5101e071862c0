package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidSource", ErrInvalidSource},
		{"ErrSourceNotFound", ErrSourceNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestValidationError_UnwrapsToInvalidSource tests errors.Is integration
func TestValidationError_UnwrapsToInvalidSource(t *testing.T) {
	err := &ValidationError{SourceName: "agenda", Reason: "missing container selector"}

	assert.True(t, errors.Is(err, ErrInvalidSource))
	assert.Contains(t, err.Error(), `"agenda"`)
	assert.Contains(t, err.Error(), "missing container selector")
}

// TestFetchErrorKind_Retryable tests the retry policy boundary
func TestFetchErrorKind_Retryable(t *testing.T) {
	assert.True(t, FetchUnreachable.Retryable())
	assert.True(t, FetchTimeout.Retryable())
	assert.False(t, FetchHTTPStatus.Retryable())
	assert.False(t, FetchTooLarge.Retryable())
}

// TestFetchError_Error tests per-kind messages
func TestFetchError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *FetchError
		want string
	}{
		{
			"http status carries the code",
			&FetchError{SourceName: "agenda", Kind: FetchHTTPStatus, StatusCode: 404},
			"fetch agenda: http status 404",
		},
		{
			"timeout",
			&FetchError{SourceName: "agenda", Kind: FetchTimeout},
			"fetch agenda: timed out",
		},
		{
			"too large",
			&FetchError{SourceName: "agenda", Kind: FetchTooLarge},
			"fetch agenda: response too large",
		},
		{
			"unreachable",
			&FetchError{SourceName: "agenda", Kind: FetchUnreachable},
			"fetch agenda: unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

// TestFetchError_Unwrap tests cause propagation
func TestFetchError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &FetchError{SourceName: "agenda", Kind: FetchUnreachable, Err: cause}

	assert.True(t, errors.Is(err, cause))
}

// TestCollaboratorError_Error tests message shape with and without a cause
func TestCollaboratorError_Error(t *testing.T) {
	bare := &CollaboratorError{Stage: StageIntentExtracted, Kind: CollaboratorMalformed}
	wrapped := &CollaboratorError{
		Stage: StageSynthesised,
		Kind:  CollaboratorTransport,
		Err:   errors.New("api status 500"),
	}

	assert.Equal(t, "collaborator intent_extracted: malformed", bare.Error())
	assert.Contains(t, wrapped.Error(), "synthesised")
	assert.Contains(t, wrapped.Error(), "api status 500")
}
