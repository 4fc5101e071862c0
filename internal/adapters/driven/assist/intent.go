package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
)

// Ensure IntentExtractor implements the interfaces.
var (
	_ driven.IntentExtractor  = (*IntentExtractor)(nil)
	_ driven.PromptStoreAware = (*IntentExtractor)(nil)
)

// intentTemperature keeps extraction near-deterministic.
const intentTemperature = 0.1

// defaultIntentPrompt is the fallback prompt when no PromptStore is configured.
const defaultIntentPrompt = `Ets un assistent especialitzat en entendre consultes sobre esdeveniments a Catalunya.

La data d'avui és: %s

Analitza la consulta de l'usuari i extreu la següent informació en format JSON:

{
    "keywords": ["paraula1", "paraula2"],
    "location": "nom del lloc o null",
    "date_range": {
        "start": "YYYY-MM-DD",
        "end": "YYYY-MM-DD"
    },
    "category": "categoria o null"
}

Interpreta expressions temporals com:
- "aquest cap de setmana" = dissabte i diumenge d'aquesta setmana
- "avui" = la data d'avui
- "demà" = la data de demà
- "la setmana que ve" = dilluns a diumenge de la setmana vinent
- "aquest mes" = des d'avui fins a final de mes

Consulta de l'usuari: %s

Respon NOMÉS amb el JSON, sense explicacions.`

// intentSchema constrains the collaborator's reply before it is trusted.
// Kept permissive on purpose: unknown fields pass, only structural
// mismatches reject.
const intentSchema = `{
    "type": "object",
    "properties": {
        "keywords": {
            "type": ["array", "null"],
            "items": {"type": "string"}
        },
        "location": {"type": ["string", "null"]},
        "date_range": {
            "type": ["object", "null"],
            "properties": {
                "start": {"type": ["string", "null"]},
                "end": {"type": ["string", "null"]}
            }
        },
        "category": {"type": ["string", "null"]}
    }
}`

// intentReply is the JSON shape the model is asked to produce.
type intentReply struct {
	Keywords  []string `json:"keywords"`
	Location  string   `json:"location"`
	DateRange *struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"date_range"`
	Category string `json:"category"`
}

// IntentExtractor turns raw query text into a structured Intent using an LLM.
type IntentExtractor struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
}

// NewIntentExtractor creates an intent extractor over the given LLM service.
func NewIntentExtractor(llm driven.LLMService) *IntentExtractor {
	return &IntentExtractor{llm: llm}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the extractor uses the hardcoded default prompt.
func (e *IntentExtractor) SetPromptStore(store driven.PromptStore) {
	e.promptStore = store
}

// Extract interprets the query text. The reference time resolves relative
// phrases and anchors parsed date bounds.
func (e *IntentExtractor) Extract(ctx context.Context, query string, now time.Time) (domain.Intent, error) {
	promptTemplate := loadPrompt(e.promptStore, driven.PromptIntentExtraction, defaultIntentPrompt)
	prompt := fmt.Sprintf(promptTemplate, now.Format("2006-01-02"), query)

	reply, err := e.llm.Generate(ctx, prompt, driven.GenerateOptions{
		Temperature: intentTemperature,
	})
	if err != nil {
		return domain.Intent{}, &domain.CollaboratorError{
			Stage: domain.StageIntentExtracted,
			Kind:  collaboratorKind(err),
			Err:   err,
		}
	}

	intent, err := parseIntent(reply, now)
	if err != nil {
		return domain.Intent{}, &domain.CollaboratorError{
			Stage: domain.StageIntentExtracted,
			Kind:  domain.CollaboratorMalformed,
			Err:   err,
		}
	}
	return intent, nil
}

// parseIntent validates and converts the model's reply into an Intent.
func parseIntent(reply string, now time.Time) (domain.Intent, error) {
	jsonText, ok := extractJSON(reply)
	if !ok {
		return domain.Intent{}, fmt.Errorf("no JSON object in reply")
	}

	var value any
	if err := json.Unmarshal([]byte(jsonText), &value); err != nil {
		return domain.Intent{}, fmt.Errorf("decode reply: %w", err)
	}

	if err := validateIntent(value); err != nil {
		return domain.Intent{}, fmt.Errorf("reply does not match intent schema: %w", err)
	}

	var parsed intentReply
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return domain.Intent{}, fmt.Errorf("decode reply: %w", err)
	}

	intent := domain.Intent{
		Location: cleanField(parsed.Location),
		Category: cleanField(parsed.Category),
	}
	for _, kw := range parsed.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			intent.Keywords = append(intent.Keywords, kw)
		}
	}
	if parsed.DateRange != nil {
		intent.Dates = parseDateRange(parsed.DateRange.Start, parsed.DateRange.End, now)
	}
	return intent, nil
}

// validateIntent checks the decoded reply against the intent schema.
func validateIntent(value any) error {
	compiler := jsonschema.NewCompiler()

	var schemaDoc any
	if err := json.Unmarshal([]byte(intentSchema), &schemaDoc); err != nil {
		return fmt.Errorf("invalid intent schema: %w", err)
	}
	if err := compiler.AddResource("intent.json", schemaDoc); err != nil {
		return fmt.Errorf("invalid intent schema: %w", err)
	}

	schema, err := compiler.Compile("intent.json")
	if err != nil {
		return fmt.Errorf("compile intent schema: %w", err)
	}

	return schema.Validate(value)
}

// parseDateRange converts "YYYY-MM-DD" bounds into a DateRange covering the
// named days in full. Unparseable bounds are dropped rather than rejecting
// the whole intent; a range with neither bound is nil.
func parseDateRange(start, end string, now time.Time) *domain.DateRange {
	var r domain.DateRange
	if t, err := time.ParseInLocation("2006-01-02", cleanField(start), now.Location()); err == nil {
		r.Start = t
	}
	if t, err := time.ParseInLocation("2006-01-02", cleanField(end), now.Location()); err == nil {
		r.End = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
	}
	if r.IsZero() {
		return nil
	}
	return &r
}

// extractJSON isolates the JSON object from a reply that may wrap it in
// markdown fences or surrounding prose.
func extractJSON(reply string) (string, bool) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return reply[start : end+1], true
}

// cleanField trims a free-text field and drops the literal nulls some
// models emit as strings.
func cleanField(text string) string {
	text = strings.TrimSpace(text)
	switch strings.ToLower(text) {
	case "null", "none":
		return ""
	}
	return text
}

// collaboratorKind classifies an LLM call failure.
func collaboratorKind(err error) domain.CollaboratorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.CollaboratorTimeout
	}
	return domain.CollaboratorTransport
}

// loadPrompt loads a prompt from the store, falling back to the default if
// unavailable.
func loadPrompt(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
