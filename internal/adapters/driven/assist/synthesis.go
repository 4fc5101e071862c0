package assist

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
)

// Ensure AnswerSynthesiser implements the interfaces.
var (
	_ driven.AnswerSynthesiser = (*AnswerSynthesiser)(nil)
	_ driven.PromptStoreAware  = (*AnswerSynthesiser)(nil)
)

// Generation parameters for answer writing.
const (
	synthesisTemperature = 0.7
	synthesisMaxTokens   = 1500
)

// noEventsContext is the evidence text when nothing matched.
const noEventsContext = "No s'han trobat esdeveniments que coincideixin amb la cerca."

// synthesisSystemPrompt sets the assistant persona for answer generation.
const synthesisSystemPrompt = `Ets Vilabot, un assistent amigable especialitzat en esdeveniments locals a Catalunya.

La teva missió és ajudar els catalans a descobrir què passa al seu voltant.

Instruccions:
1. Respon sempre en català
2. Sigues concís però informatiu
3. Si hi ha esdeveniments, presenta'ls de forma clara i organitzada
4. Inclou dates, llocs i una breu descripció
5. Si no trobes esdeveniments, suggereix alternatives o demana més detalls
6. Mantingues un to proper i entusiasta sobre la cultura catalana

Format de resposta:
- Usa emojis amb moderació per fer-ho visual
- Agrupa per data si hi ha múltiples esdeveniments
- Inclou enllaços a les fonts quan siguin disponibles`

// defaultSynthesisPrompt is the fallback prompt when no PromptStore is configured.
const defaultSynthesisPrompt = `Consulta de l'usuari: %s

%s

Genera una resposta útil i ben formatada per a l'usuari.`

// AnswerSynthesiser writes the final natural-language answer using an LLM.
type AnswerSynthesiser struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
}

// NewAnswerSynthesiser creates an answer synthesiser over the given LLM service.
func NewAnswerSynthesiser(llm driven.LLMService) *AnswerSynthesiser {
	return &AnswerSynthesiser{llm: llm}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the synthesiser uses the hardcoded default prompt.
func (s *AnswerSynthesiser) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Synthesise writes the answer for the query from the gathered evidence.
func (s *AnswerSynthesiser) Synthesise(ctx context.Context, query string, intent domain.Intent, events []domain.Event, sourceErrors map[string]*domain.FetchError) (string, error) {
	promptTemplate := loadPrompt(s.promptStore, driven.PromptAnswerSynthesis, defaultSynthesisPrompt)
	userPrompt := fmt.Sprintf(promptTemplate, query, buildContext(intent, events, sourceErrors))

	answer, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: synthesisSystemPrompt},
		{Role: "user", Content: userPrompt},
	}, driven.ChatOptions{
		MaxTokens:   synthesisMaxTokens,
		Temperature: synthesisTemperature,
	})
	if err != nil {
		return "", &domain.CollaboratorError{
			Stage: domain.StageSynthesised,
			Kind:  collaboratorKind(err),
			Err:   err,
		}
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", &domain.CollaboratorError{
			Stage: domain.StageSynthesised,
			Kind:  domain.CollaboratorMalformed,
			Err:   fmt.Errorf("empty answer"),
		}
	}
	return answer, nil
}

// buildContext assembles the evidence block the answer is written from:
// the interpreted intent, the gathered events, and which sources failed.
func buildContext(intent domain.Intent, events []domain.Event, sourceErrors map[string]*domain.FetchError) string {
	var b strings.Builder

	b.WriteString("Intent extret:\n")
	b.WriteString("- Paraules clau: " + orFallback(intent.KeywordString(), "Cap") + "\n")
	b.WriteString("- Ubicació: " + orFallback(intent.Location, "No especificada") + "\n")
	b.WriteString("- Dates: " + rangeText(intent.Dates) + "\n")
	b.WriteString("- Categoria: " + orFallback(intent.Category, "No especificada") + "\n")

	b.WriteString("\nContingut trobat:\n")
	if len(events) == 0 {
		b.WriteString(noEventsContext + "\n")
	}
	for _, event := range events {
		b.WriteString("Títol: " + orFallback(event.Title, "Sense títol") + "\n")
		b.WriteString("Data: " + eventDateText(event) + "\n")
		b.WriteString("Lloc: " + orFallback(event.Location, "Lloc no especificat") + "\n")
		b.WriteString("Descripció: " + orFallback(event.Description, "Sense descripció") + "\n")
		b.WriteString("Font: " + orFallback(event.SourceURL, "No disponible") + "\n")
		b.WriteString("---\n")
	}

	if len(sourceErrors) > 0 {
		names := make([]string, 0, len(sourceErrors))
		for name := range sourceErrors {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteString("\nFonts que no s'han pogut consultar:\n")
		for _, name := range names {
			b.WriteString(fmt.Sprintf("- %s: %s\n", name, sourceErrors[name].Kind))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// eventDateText renders the date line for one event. Parsed dates render
// from the start time; anything else falls back to the scraped text.
func eventDateText(event domain.Event) string {
	if event.DateStatus == domain.DateParsed && event.StartTime != nil {
		t := *event.StartTime
		if t.Hour() == 0 && t.Minute() == 0 {
			return t.Format("02/01/2006")
		}
		return t.Format("02/01/2006 15:04")
	}
	if event.RawDateText != "" {
		return event.RawDateText
	}
	return "Data no especificada"
}

// rangeText renders a date range for the intent summary.
func rangeText(r *domain.DateRange) string {
	if r == nil || r.IsZero() {
		return "No especificades"
	}
	switch {
	case r.Start.IsZero():
		return "fins al " + r.End.Format("02/01/2006")
	case r.End.IsZero():
		return "a partir del " + r.Start.Format("02/01/2006")
	default:
		return r.Start.Format("02/01/2006") + " - " + r.End.Format("02/01/2006")
	}
}

// orFallback substitutes fallback when text is empty.
func orFallback(text, fallback string) string {
	if text == "" {
		return fallback
	}
	return text
}
