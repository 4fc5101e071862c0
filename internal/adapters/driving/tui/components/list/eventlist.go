// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vilabot/vilabot/internal/adapters/driving/tui/styles"
	"github.com/vilabot/vilabot/internal/core/domain"
)

// EventList displays aggregated events in a navigable list.
type EventList struct {
	events   []domain.Event
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewEventList creates a new event list component.
func NewEventList(s *styles.Styles) *EventList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &EventList{
		events:   nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the event list.
func (e *EventList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (e *EventList) Update(msg tea.Msg) (*EventList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			e.MoveUp()
		case tea.KeyDown:
			e.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			e.MoveUp()
		case "j":
			e.MoveDown()
		}
	}
	return e, nil
}

// View renders the event list.
func (e *EventList) View() string {
	if len(e.events) == 0 {
		return e.styles.Muted.Render("No events")
	}

	lines := make([]string, 0, len(e.events)*2+2)

	// Header
	header := e.styles.Subtitle.Render(fmt.Sprintf("Events (%d)", len(e.events)))
	lines = append(lines, header, "")

	// Calculate visible range based on height.
	// Each event takes two lines (title+date, then location+source).
	visibleCount := (e.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if e.selected >= visibleCount {
		start = e.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(e.events) {
		end = len(e.events)
	}

	for i := start; i < end; i++ {
		line := e.renderEvent(i, &e.events[i])
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderEvent formats a single event as a title line plus a detail line.
func (e *EventList) renderEvent(index int, event *domain.Event) string {
	// Indicator for selected item
	indicator := "  "
	if index == e.selected {
		indicator = "> "
	}

	title := event.Title
	if title == "" {
		title = "(Untitled)"
	}

	// Truncate title if too long
	maxTitleLen := e.width - 24
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	date := e.renderDate(event)

	var titleLine string
	if index == e.selected {
		titleLine = e.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, date))
	} else {
		titleLine = e.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
			e.styles.Muted.Render(date)
	}

	// Location and source on the detail line
	details := make([]string, 0, 2)
	if event.Location != "" {
		details = append(details, event.Location)
	}
	if event.SourceName != "" {
		details = append(details, event.SourceName)
	}
	detail := strings.Join(details, " · ")

	maxDetailLen := e.width - 6
	if maxDetailLen < 20 {
		maxDetailLen = 20
	}
	if len(detail) > maxDetailLen {
		detail = detail[:maxDetailLen-3] + "..."
	}

	detailLine := e.styles.Muted.Render("    " + detail)

	return titleLine + "\n" + detailLine
}

// renderDate formats the event date, falling back to the raw text when the
// date never parsed.
func (e *EventList) renderDate(event *domain.Event) string {
	if event.StartTime != nil {
		return event.StartTime.Format("Mon 02 Jan 15:04")
	}
	if event.RawDateText != "" {
		return event.RawDateText
	}
	return "date unknown"
}

// SetEvents updates the event list.
func (e *EventList) SetEvents(events []domain.Event) {
	e.events = events
	e.selected = 0
}

// Events returns the current events.
func (e *EventList) Events() []domain.Event {
	return e.events
}

// Selected returns the index of the selected event.
func (e *EventList) Selected() int {
	return e.selected
}

// SetSelected sets the selected index.
func (e *EventList) SetSelected(index int) {
	if index >= 0 && index < len(e.events) {
		e.selected = index
	}
}

// SelectedEvent returns the currently selected event, or nil if none.
func (e *EventList) SelectedEvent() *domain.Event {
	if len(e.events) == 0 || e.selected < 0 || e.selected >= len(e.events) {
		return nil
	}
	return &e.events[e.selected]
}

// MoveUp moves selection up.
func (e *EventList) MoveUp() {
	if e.selected > 0 {
		e.selected--
	}
}

// MoveDown moves selection down.
func (e *EventList) MoveDown() {
	if e.selected < len(e.events)-1 {
		e.selected++
	}
}

// SetDimensions sets the component dimensions.
func (e *EventList) SetDimensions(width, height int) {
	e.width = width
	e.height = height
}

// Width returns the current width.
func (e *EventList) Width() int {
	return e.width
}

// Height returns the current height.
func (e *EventList) Height() int {
	return e.height
}

// Count returns the number of events.
func (e *EventList) Count() int {
	return len(e.events)
}

// IsEmpty returns whether the list is empty.
func (e *EventList) IsEmpty() bool {
	return len(e.events) == 0
}
