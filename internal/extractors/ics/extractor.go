// Package ics extracts event records from iCalendar feeds.
package ics

import (
	"strings"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles iCalendar content.
type Extractor struct{}

// New creates a new iCalendar extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedKinds returns the fetch kinds this extractor handles.
func (e *Extractor) SupportedKinds() []domain.FetchKind {
	return []domain.FetchKind{domain.FetchICalFeed}
}

// Extract reads one record per VEVENT block, in feed order.
// Selectors are ignored: iCalendar property names are fixed by RFC 5545.
func (e *Extractor) Extract(
	content *domain.RawContent, source domain.SourceDefinition,
) []domain.RawEventRecord {
	records := make([]domain.RawEventRecord, 0)

	for _, event := range parseEvents(string(content.Body)) {
		record := domain.RawEventRecord{
			SourceName:      source.Name,
			TitleText:       event["SUMMARY"],
			DateText:        event["DTSTART"],
			LocationText:    event["LOCATION"],
			DescriptionText: event["DESCRIPTION"],
			CategoryText:    firstCategory(event["CATEGORIES"]),
			LinkURL:         event["URL"],
		}
		if record.IsNoise() {
			continue
		}
		records = append(records, record)
	}

	return records
}

// parseEvents unfolds the feed and collects the properties of each
// VEVENT block into a map keyed by property name.
func parseEvents(feed string) []map[string]string {
	events := make([]map[string]string, 0)

	var current map[string]string
	for _, line := range unfoldLines(feed) {
		switch {
		case line == "BEGIN:VEVENT":
			current = make(map[string]string)
		case line == "END:VEVENT":
			if current != nil {
				events = append(events, current)
			}
			current = nil
		case current != nil:
			name, value, ok := parseProperty(line)
			if ok {
				current[name] = value
			}
		}
	}

	return events
}

// unfoldLines splits the feed into lines, joining RFC 5545 continuation
// lines (a line starting with space or tab continues the previous one).
func unfoldLines(feed string) []string {
	raw := strings.Split(strings.ReplaceAll(feed, "\r\n", "\n"), "\n")

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseProperty splits "NAME;PARAMS:VALUE" into the bare property name
// and its decoded value. Parameters such as TZID are dropped.
func parseProperty(line string) (name, value string, ok bool) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", "", false
	}

	name = line[:colon]
	if semi := strings.Index(name, ";"); semi >= 0 {
		name = name[:semi]
	}
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return "", "", false
	}

	return name, decodeValue(strings.TrimSpace(line[colon+1:])), true
}

// firstCategory picks the first tag of a CATEGORIES list.
func firstCategory(value string) string {
	if comma := strings.Index(value, ","); comma >= 0 {
		value = value[:comma]
	}
	return strings.TrimSpace(value)
}

// decodeValue decodes RFC 5545 text escapes.
func decodeValue(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	for i := 0; i < len(value); i++ {
		if value[i] != '\\' || i+1 >= len(value) {
			b.WriteByte(value[i])
			continue
		}

		i++
		switch value[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		case ',', ';', '\\':
			b.WriteByte(value[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(value[i])
		}
	}

	return b.String()
}
