package event

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vilabot/vilabot/internal/core/domain"
)

// layouts are tried verbatim against the trimmed text, most specific first.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006",
	"20060102T150405Z",
	"20060102T150405",
	"20060102",
}

// months maps Catalan, Spanish and English month names to their number.
// Names shared between languages appear once.
var months = map[string]time.Month{
	"gener": time.January, "febrer": time.February, "març": time.March,
	"abril": time.April, "maig": time.May, "juny": time.June,
	"juliol": time.July, "agost": time.August, "setembre": time.September,
	"octubre": time.October, "novembre": time.November, "desembre": time.December,

	"enero": time.January, "febrero": time.February, "marzo": time.March,
	"mayo": time.May, "junio": time.June, "julio": time.July,
	"agosto": time.August, "septiembre": time.September,
	"noviembre": time.November, "diciembre": time.December,

	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// relativeDays maps relative day words to their offset from the clock.
var relativeDays = map[string]int{
	"avui": 0, "hoy": 0, "today": 0,
	"demà": 1, "dema": 1, "mañana": 1, "manana": 1, "tomorrow": 1,
}

var (
	// weekdayPrefix strips a leading weekday name ("Diumenge 24 d'agost").
	weekdayPrefix = regexp.MustCompile(`(?i)^(?:dilluns|dimarts|dimecres|dijous|divendres|dissabte|diumenge|lunes|martes|mi[ée]rcoles|jueves|viernes|s[áa]bado|domingo|monday|tuesday|wednesday|thursday|friday|saturday|sunday)[,\s]+`)

	// textualDate matches "22 d'agost de 2025", "15 de agosto", "22 August 2025".
	textualDate = regexp.MustCompile(`(?i)^(\d{1,2})\s*(?:de\s+|d['’])?(\p{L}+)(?:\s+(?:del?\s+)?(\d{4}))?`)

	// dayRange matches "15-18 d'agost de 2025" and "Del 20 al 27 d'agost".
	// The range collapses to its first day.
	dayRange = regexp.MustCompile(`(?i)^(?:del\s+)?(\d{1,2})\s*(?:-|–|—|al)\s*\d{1,2}\s*(?:de\s+|d['’])?(\p{L}+)(?:\s+(?:del?\s+)?(\d{4}))?`)

	// numericNoYear matches "22/08" and "22-08".
	numericNoYear = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})$`)

	// timeOfDay matches "21:00", "21.00h", "9:30 h" anywhere in the text.
	timeOfDay = regexp.MustCompile(`(\d{1,2})[:.](\d{2})\s*h?`)
)

// parseDate resolves free-form date text against the injected clock.
// The zero status return is DateUnparsed with a zero time.
func parseDate(text string, now time.Time) (time.Time, domain.DateParseStatus) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, domain.DateUnparsed
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, text, now.Location()); err == nil {
			return t, domain.DateParsed
		}
	}

	stripped := weekdayPrefix.ReplaceAllString(text, "")

	if t, status, ok := parseRelative(stripped, now); ok {
		return t, status
	}
	if t, status, ok := parseRange(stripped, now); ok {
		return t, status
	}
	if t, status, ok := parseTextual(stripped, now); ok {
		return t, status
	}
	if t, status, ok := parseNumeric(stripped, now); ok {
		return t, status
	}

	return time.Time{}, domain.DateUnparsed
}

// parseRelative handles avui/hoy/today and demà/mañana/tomorrow.
func parseRelative(text string, now time.Time) (time.Time, domain.DateParseStatus, bool) {
	word := strings.ToLower(text)
	if idx := strings.IndexAny(word, ",; "); idx >= 0 {
		word = word[:idx]
	}

	offset, ok := relativeDays[word]
	if !ok {
		return time.Time{}, domain.DateUnparsed, false
	}

	hour, minute := clockOf(text)
	t := time.Date(now.Year(), now.Month(), now.Day()+offset, hour, minute, 0, 0, now.Location())
	return t, domain.DateParsed, true
}

// parseRange handles day ranges, collapsing them to the first day.
func parseRange(text string, now time.Time) (time.Time, domain.DateParseStatus, bool) {
	m := dayRange.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, domain.DateUnparsed, false
	}

	day, _ := strconv.Atoi(m[1])
	return buildDate(day, m[2], m[3], text, now)
}

// parseTextual handles single textual dates with an optional year and time.
func parseTextual(text string, now time.Time) (time.Time, domain.DateParseStatus, bool) {
	m := textualDate.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, domain.DateUnparsed, false
	}

	day, _ := strconv.Atoi(m[1])
	return buildDate(day, m[2], m[3], text, now)
}

// parseNumeric handles day/month without a year.
func parseNumeric(text string, now time.Time) (time.Time, domain.DateParseStatus, bool) {
	m := numericNoYear.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, domain.DateUnparsed, false
	}

	day, _ := strconv.Atoi(m[1])
	monthNum, _ := strconv.Atoi(m[2])
	if monthNum < 1 || monthNum > 12 {
		return time.Time{}, domain.DateUnparsed, false
	}

	t, ok := nearestFuture(day, time.Month(monthNum), 0, 0, now)
	if !ok {
		return time.Time{}, domain.DateUnparsed, false
	}
	return t, domain.DatePartialText, true
}

// buildDate assembles the parse outcome for a day + month name, with the
// year deciding between Parsed and nearest-future PartialText.
func buildDate(
	day int, monthName, yearText, text string, now time.Time,
) (time.Time, domain.DateParseStatus, bool) {
	month, ok := months[strings.ToLower(monthName)]
	if !ok {
		return time.Time{}, domain.DateUnparsed, false
	}

	hour, minute := clockOf(text)

	if yearText != "" {
		year, _ := strconv.Atoi(yearText)
		t, valid := makeDate(year, month, day, hour, minute, now.Location())
		if !valid {
			return time.Time{}, domain.DateUnparsed, false
		}
		return t, domain.DateParsed, true
	}

	t, valid := nearestFuture(day, month, hour, minute, now)
	if !valid {
		return time.Time{}, domain.DateUnparsed, false
	}
	return t, domain.DatePartialText, true
}

// nearestFuture resolves a yearless day + month to its next occurrence
// on or after the clock date.
func nearestFuture(day int, month time.Month, hour, minute int, now time.Time) (time.Time, bool) {
	t, ok := makeDate(now.Year(), month, day, hour, minute, now.Location())
	if !ok {
		return time.Time{}, false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if t.Before(today) {
		return makeDate(now.Year()+1, month, day, hour, minute, now.Location())
	}
	return t, true
}

// makeDate builds a time and rejects day/month combinations that
// time.Date would silently roll over, such as 31 February.
func makeDate(year int, month time.Month, day, hour, minute int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, month, day, hour, minute, 0, 0, loc)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

// clockOf finds an optional time of day anywhere in the text.
func clockOf(text string) (hour, minute int) {
	m := timeOfDay.FindStringSubmatch(text)
	if m == nil {
		return 0, 0
	}

	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return 0, 0
	}
	return h, min
}
