// Package query provides the main question-and-answer view for the TUI.
package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vilabot/vilabot/internal/adapters/driving/tui/components/input"
	"github.com/vilabot/vilabot/internal/adapters/driving/tui/components/list"
	"github.com/vilabot/vilabot/internal/adapters/driving/tui/components/status"
	"github.com/vilabot/vilabot/internal/adapters/driving/tui/keymap"
	"github.com/vilabot/vilabot/internal/adapters/driving/tui/messages"
	"github.com/vilabot/vilabot/internal/adapters/driving/tui/styles"
	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driving"
)

// View represents the query view with input, answer panel, events list,
// and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.EventList
	statusbar *status.Bar

	queryService driving.QueryService
	ctx          context.Context

	result *domain.QueryResult

	width      int
	height     int
	ready      bool
	asking     bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
}

// NewView creates a new query view.
func NewView(s *styles.Styles, km *keymap.KeyMap, queryService driving.QueryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:       s,
		keymap:       km,
		input:        input.NewQueryInput(s),
		list:         list.NewEventList(s),
		statusbar:    status.NewBar(s, km),
		queryService: queryService,
		ctx:          context.Background(),
		width:        80,
		height:       24,
		ready:        false,
		focusInput:   true, // Start in input mode
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the query view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QueryCompleted:
		v.handleQueryCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.asking = false
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to input component
	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	// Forward to list component
	var listCmd tea.Cmd
	v.list, listCmd = v.list.Update(msg)
	if listCmd != nil {
		cmds = append(cmds, listCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Ignore further submissions while a query is in flight
	if v.asking {
		return v, nil
	}

	// Enter in input mode submits the question
	if msg.Type == tea.KeyEnter && v.focusInput {
		question := strings.TrimSpace(v.input.Value())
		if question == "" {
			return v, nil
		}
		v.asking = true
		v.statusbar.SetState(status.StateAsking)
		v.focusInput = false // Move to results mode once answered
		v.input.Blur()
		cmd := v.performQuery(question)
		return v, cmd
	}

	// Input mode: all keys go to input
	if v.focusInput {
		v.input, _ = v.input.Update(msg)
		return v, nil
	}

	// Results mode: handle navigation
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
		return v, nil
	case "j":
		v.list.MoveDown()
		return v, nil
	case "n":
		// New question: clear input and focus it
		v.focusInput = true
		v.input.Focus()
		v.input.SetValue("")
		return v, nil
	}

	return v, nil
}

// performQuery runs the pipeline for a question.
func (v *View) performQuery(question string) tea.Cmd {
	return func() tea.Msg {
		if v.queryService == nil {
			return messages.ErrorOccurred{Err: ErrNoQueryService}
		}

		result, err := v.queryService.HandleQuery(v.ctx, question)
		if err != nil {
			return messages.QueryCompleted{Result: nil, Err: err}
		}
		return messages.QueryCompleted{Result: result, Err: nil}
	}
}

// handleQueryCompleted processes the pipeline result.
func (v *View) handleQueryCompleted(msg messages.QueryCompleted) {
	v.asking = false

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.result = msg.Result
	v.list.SetEvents(msg.Result.Events)
	v.statusbar.SetState(status.StateAnswered)
	v.statusbar.SetEventCount(len(msg.Result.Events))

	// Switch to results mode once the answer arrives
	v.focusInput = false
	v.input.Blur()
}

// View renders the query view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	// Header
	header := v.styles.Title.Render("Vilabot")
	sections = append(sections, header, "")

	// Question input
	inputView := v.input.View()
	sections = append(sections, inputView, "")

	// In-flight state
	if v.asking {
		sections = append(sections, v.styles.Muted.Render("Consulting sources..."), "")
	}

	// Error display
	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	// Answer panel
	if answer := v.renderAnswer(); answer != "" {
		sections = append(sections, answer, "")
	}

	// Degraded sources warning
	if warning := v.renderSourceErrors(); warning != "" {
		sections = append(sections, warning, "")
	}

	// Events list
	if v.result != nil {
		listView := v.list.View()
		sections = append(sections, listView)
	}

	// Status bar at bottom
	sections = append(sections, "")
	statusView := v.statusbar.View()
	sections = append(sections, statusView)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderAnswer renders the synthesised answer in a bordered panel.
func (v *View) renderAnswer() string {
	if v.result == nil || v.result.Answer == "" {
		return ""
	}

	panelWidth := v.width - 4
	if panelWidth < 30 {
		panelWidth = 30
	}

	return v.styles.Border.
		Width(panelWidth).
		Padding(0, 1).
		Render(v.result.Answer)
}

// renderSourceErrors renders a warning line naming the sources that failed.
func (v *View) renderSourceErrors() string {
	if v.result == nil || len(v.result.SourceErrors) == 0 {
		return ""
	}

	names := make([]string, 0, len(v.result.SourceErrors))
	for name := range v.result.SourceErrors {
		names = append(names, name)
	}
	sort.Strings(names)

	return v.styles.Warning.Render(
		fmt.Sprintf("Unavailable sources: %s", strings.Join(names, ", ")),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Allocate space to components
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-14) // Reserve space for header, input, answer, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Asking returns whether a query is in flight.
func (v *View) Asking() bool {
	return v.asking
}

// Query returns the current question text.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the question text.
func (v *View) SetQuery(question string) {
	v.input.SetValue(question)
}

// Result returns the latest pipeline result, or nil before the first answer.
func (v *View) Result() *domain.QueryResult {
	return v.result
}

// Events returns the events from the latest result.
func (v *View) Events() []domain.Event {
	return v.list.Events()
}

// SelectedIndex returns the index of the selected event.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedEvent returns the currently selected event.
func (v *View) SelectedEvent() *domain.Event {
	return v.list.SelectedEvent()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.asking = false
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetEvents(nil)
	v.result = nil
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
	v.statusbar.SetEventCount(0)
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
