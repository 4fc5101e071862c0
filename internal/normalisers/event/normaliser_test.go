package event

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilabot/vilabot/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestNormalise_CleansFields(t *testing.T) {
	raw := domain.RawEventRecord{
		SourceName:      "agenda-vilanova",
		TitleText:       "  Festa   Major\n  de Vilanova ",
		DateText:        "23 d'agost de 2025",
		LocationText:    " Plaça de la Vila\t",
		DescriptionText: "Concerts,\nhavaneres   i castell de focs.",
		CategoryText:    "Festa Major",
		LinkURL:         "https://vilanova.example.org/festa",
	}

	event := New().Normalise(raw, clock)

	assert.Equal(t, "Festa Major de Vilanova", event.Title)
	assert.Equal(t, "Plaça de la Vila", event.Location)
	assert.Equal(t, "Concerts, havaneres i castell de focs.", event.Description)
	assert.Equal(t, "festa major", event.Category, "categories are lower-cased")
	assert.Equal(t, "agenda-vilanova", event.SourceName)
	assert.Equal(t, "https://vilanova.example.org/festa", event.SourceURL)
}

func TestNormalise_DateStatuses(t *testing.T) {
	t.Run("parsed clears the raw text", func(t *testing.T) {
		raw := domain.RawEventRecord{SourceName: "a", TitleText: "Festa", DateText: "23 d'agost de 2025"}

		event := New().Normalise(raw, clock)

		assert.Equal(t, domain.DateParsed, event.DateStatus)
		require.NotNil(t, event.StartTime)
		assert.Equal(t, time.Date(2025, 8, 23, 0, 0, 0, 0, time.UTC), *event.StartTime)
		assert.Empty(t, event.RawDateText)
	})

	t.Run("partial keeps the raw text", func(t *testing.T) {
		raw := domain.RawEventRecord{SourceName: "a", TitleText: "Festa", DateText: "23 d'agost"}

		event := New().Normalise(raw, clock)

		assert.Equal(t, domain.DatePartialText, event.DateStatus)
		require.NotNil(t, event.StartTime)
		assert.Equal(t, "23 d'agost", event.RawDateText)
	})

	t.Run("unparsed keeps the raw text with no start time", func(t *testing.T) {
		raw := domain.RawEventRecord{SourceName: "a", TitleText: "Mercat", DateText: "Cada dissabte"}

		event := New().Normalise(raw, clock)

		assert.Equal(t, domain.DateUnparsed, event.DateStatus)
		assert.Nil(t, event.StartTime)
		assert.Equal(t, "Cada dissabte", event.RawDateText)
	})
}

func TestNormalise_TruncatesDescription(t *testing.T) {
	raw := domain.RawEventRecord{
		SourceName:      "a",
		TitleText:       "Festa",
		DescriptionText: strings.Repeat("à", 350),
	}

	event := New().Normalise(raw, clock)

	runes := []rune(event.Description)
	assert.Len(t, runes, MaxDescriptionRunes, "truncation counts runes, not bytes")
	assert.Equal(t, 'à', runes[len(runes)-1])
}

func TestNormalise_FingerprintIdentity(t *testing.T) {
	t.Run("link dominates", func(t *testing.T) {
		first := domain.RawEventRecord{
			SourceName: "a", TitleText: "Festa Major", LinkURL: "https://a.example.org/festa",
		}
		second := domain.RawEventRecord{
			SourceName: "a", TitleText: "Festa Major de Vilanova", LinkURL: "https://a.example.org/festa",
		}

		assert.Equal(t, New().Normalise(first, clock).ID, New().Normalise(second, clock).ID)
	})

	t.Run("title and date identify linkless records", func(t *testing.T) {
		first := domain.RawEventRecord{SourceName: "a", TitleText: "Festa Major", DateText: "avui"}
		second := domain.RawEventRecord{SourceName: "a", TitleText: "Festa Major", DateText: "demà"}

		assert.NotEqual(t, New().Normalise(first, clock).ID, New().Normalise(second, clock).ID)
	})

	t.Run("sources never collide", func(t *testing.T) {
		a := domain.RawEventRecord{SourceName: "a", TitleText: "Festa Major"}
		b := domain.RawEventRecord{SourceName: "b", TitleText: "Festa Major"}

		assert.NotEqual(t, New().Normalise(a, clock).ID, New().Normalise(b, clock).ID)
	})
}

func TestNormalise_FingerprintUsesCleanedText(t *testing.T) {
	messy := domain.RawEventRecord{SourceName: "a", TitleText: "  Festa   Major "}
	clean := domain.RawEventRecord{SourceName: "a", TitleText: "Festa Major"}

	assert.Equal(t, New().Normalise(messy, clock).ID, New().Normalise(clean, clock).ID)
}
