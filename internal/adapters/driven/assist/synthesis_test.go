package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
)

func synthesisEvents() []domain.Event {
	start := time.Date(2025, 8, 23, 21, 0, 0, 0, time.UTC)
	return []domain.Event{
		{
			ID:          "a",
			Title:       "Festa Major de Gràcia",
			Description: "Carrers guarnits i concerts cada nit.",
			StartTime:   &start,
			DateStatus:  domain.DateParsed,
			Location:    "Gràcia, Barcelona",
			SourceName:  "timeout-bcn",
			SourceURL:   "https://example.org/gracia",
		},
		{
			ID:          "b",
			Title:       "Correfoc dels Diables",
			DateStatus:  domain.DatePartialText,
			RawDateText: "Diumenge 24 d'agost, 22:00h",
			SourceName:  "vilanova-agenda",
		},
	}
}

// TestAnswerSynthesiser_Synthesise_HappyPath tests that the answer comes
// back and the evidence reaches the model.
func TestAnswerSynthesiser_Synthesise_HappyPath(t *testing.T) {
	llm := &mockLLM{chatReply: "Aquest cap de setmana tens la Festa Major de Gràcia i el Correfoc."}
	synth := NewAnswerSynthesiser(llm)

	answer, err := synth.Synthesise(context.Background(), "què puc fer aquest cap de setmana?", domain.Intent{
		Keywords: []string{"festa major"},
		Location: "Barcelona",
	}, synthesisEvents(), nil)

	require.NoError(t, err)
	assert.Equal(t, "Aquest cap de setmana tens la Festa Major de Gràcia i el Correfoc.", answer)

	require.Len(t, llm.gotMessages, 2)
	assert.Equal(t, "system", llm.gotMessages[0].Role)
	assert.Contains(t, llm.gotMessages[0].Content, "Ets Vilabot")

	user := llm.gotMessages[1]
	assert.Equal(t, "user", user.Role)
	assert.Contains(t, user.Content, "què puc fer aquest cap de setmana?")
	assert.Contains(t, user.Content, "Títol: Festa Major de Gràcia")
	assert.Contains(t, user.Content, "Lloc: Gràcia, Barcelona")
	assert.Contains(t, user.Content, "Font: https://example.org/gracia")
	assert.Contains(t, user.Content, "- Paraules clau: festa major")
	assert.Contains(t, user.Content, "- Ubicació: Barcelona")

	assert.Equal(t, 1500, llm.gotChatOpts.MaxTokens)
	assert.InDelta(t, 0.7, llm.gotChatOpts.Temperature, 0.001)
}

// TestAnswerSynthesiser_Synthesise_NoEvents tests the empty-evidence text.
func TestAnswerSynthesiser_Synthesise_NoEvents(t *testing.T) {
	llm := &mockLLM{chatReply: "No he trobat res, vols provar una altra cerca?"}
	synth := NewAnswerSynthesiser(llm)

	_, err := synth.Synthesise(context.Background(), "òpera a Reus", domain.Intent{}, nil, nil)

	require.NoError(t, err)
	assert.Contains(t, llm.gotMessages[1].Content, "No s'han trobat esdeveniments")
}

// TestAnswerSynthesiser_Synthesise_SourceErrors tests that failed sources
// are named in the evidence, in stable order.
func TestAnswerSynthesiser_Synthesise_SourceErrors(t *testing.T) {
	llm := &mockLLM{chatReply: "Algunes fonts no estaven disponibles."}
	synth := NewAnswerSynthesiser(llm)

	sourceErrors := map[string]*domain.FetchError{
		"vilanova-agenda": {SourceName: "vilanova-agenda", Kind: domain.FetchTimeout},
		"girona-cultura":  {SourceName: "girona-cultura", Kind: domain.FetchHTTPStatus, StatusCode: 503},
	}

	_, err := synth.Synthesise(context.Background(), "festes", domain.Intent{}, nil, sourceErrors)

	require.NoError(t, err)
	user := llm.gotMessages[1].Content
	assert.Contains(t, user, "Fonts que no s'han pogut consultar:")

	girona := "- girona-cultura: http_status"
	vilanova := "- vilanova-agenda: timeout"
	assert.Contains(t, user, girona)
	assert.Contains(t, user, vilanova)
	assert.Less(t, strings.Index(user, girona), strings.Index(user, vilanova))
}

// TestAnswerSynthesiser_Synthesise_DateRendering tests the per-status date
// lines in the evidence block.
func TestAnswerSynthesiser_Synthesise_DateRendering(t *testing.T) {
	midnight := time.Date(2025, 8, 23, 0, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 8, 23, 21, 30, 0, 0, time.UTC)
	events := []domain.Event{
		{Title: "a", StartTime: &evening, DateStatus: domain.DateParsed},
		{Title: "b", StartTime: &midnight, DateStatus: domain.DateParsed},
		{Title: "c", DateStatus: domain.DatePartialText, RawDateText: "Cada dissabte d'agost"},
		{Title: "d", DateStatus: domain.DateUnparsed},
	}

	llm := &mockLLM{chatReply: "ok"}
	synth := NewAnswerSynthesiser(llm)

	_, err := synth.Synthesise(context.Background(), "agenda", domain.Intent{}, events, nil)

	require.NoError(t, err)
	user := llm.gotMessages[1].Content
	assert.Contains(t, user, "Data: 23/08/2025 21:30")
	assert.Contains(t, user, "Data: 23/08/2025\n")
	assert.Contains(t, user, "Data: Cada dissabte d'agost")
	assert.Contains(t, user, "Data: Data no especificada")
}

// TestAnswerSynthesiser_Synthesise_TransportError tests that LLM failures
// surface as synthesis-stage collaborator errors.
func TestAnswerSynthesiser_Synthesise_TransportError(t *testing.T) {
	llm := &mockLLM{chatErr: errors.New("connection refused")}
	synth := NewAnswerSynthesiser(llm)

	answer, err := synth.Synthesise(context.Background(), "festes", domain.Intent{}, nil, nil)

	assert.Empty(t, answer)

	var cerr *domain.CollaboratorError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, domain.StageSynthesised, cerr.Stage)
	assert.Equal(t, domain.CollaboratorTransport, cerr.Kind)
}

// TestAnswerSynthesiser_Synthesise_Timeout tests deadline classification.
func TestAnswerSynthesiser_Synthesise_Timeout(t *testing.T) {
	llm := &mockLLM{chatErr: fmt.Errorf("send request: %w", context.DeadlineExceeded)}
	synth := NewAnswerSynthesiser(llm)

	_, err := synth.Synthesise(context.Background(), "festes", domain.Intent{}, nil, nil)

	var cerr *domain.CollaboratorError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, domain.CollaboratorTimeout, cerr.Kind)
}

// TestAnswerSynthesiser_Synthesise_EmptyAnswer tests that a blank reply is
// malformed rather than a silent empty answer.
func TestAnswerSynthesiser_Synthesise_EmptyAnswer(t *testing.T) {
	llm := &mockLLM{chatReply: "   \n"}
	synth := NewAnswerSynthesiser(llm)

	_, err := synth.Synthesise(context.Background(), "festes", domain.Intent{}, nil, nil)

	var cerr *domain.CollaboratorError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, domain.CollaboratorMalformed, cerr.Kind)
}

// TestAnswerSynthesiser_PromptStore tests template override via the store.
func TestAnswerSynthesiser_PromptStore(t *testing.T) {
	llm := &mockLLM{chatReply: "fet"}
	synth := NewAnswerSynthesiser(llm)
	synth.SetPromptStore(&mockPromptStore{prompts: map[string]string{
		driven.PromptAnswerSynthesis: "PREGUNTA %s EVIDÈNCIA %s",
	}})

	_, err := synth.Synthesise(context.Background(), "concerts", domain.Intent{}, nil, nil)

	require.NoError(t, err)
	user := llm.gotMessages[1].Content
	assert.Contains(t, user, "PREGUNTA concerts EVIDÈNCIA")
}

// TestBuildContext_IntentFallbacks tests the placeholder lines for an
// unfiltered browse.
func TestBuildContext_IntentFallbacks(t *testing.T) {
	text := buildContext(domain.Intent{}, nil, nil)

	assert.Contains(t, text, "- Paraules clau: Cap")
	assert.Contains(t, text, "- Ubicació: No especificada")
	assert.Contains(t, text, "- Dates: No especificades")
	assert.Contains(t, text, "- Categoria: No especificada")
}

// TestBuildContext_RangeText tests date-range rendering variants.
func TestBuildContext_RangeText(t *testing.T) {
	start := time.Date(2025, 8, 23, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 24, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name  string
		dates *domain.DateRange
		want  string
	}{
		{"both bounds", &domain.DateRange{Start: start, End: end}, "23/08/2025 - 24/08/2025"},
		{"start only", &domain.DateRange{Start: start}, "a partir del 23/08/2025"},
		{"end only", &domain.DateRange{End: end}, "fins al 24/08/2025"},
		{"nil range", nil, "No especificades"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := buildContext(domain.Intent{Dates: tt.dates}, nil, nil)

			assert.Contains(t, text, "- Dates: "+tt.want)
		})
	}
}
