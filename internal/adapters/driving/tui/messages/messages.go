// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/vilabot/vilabot/internal/core/domain"
)

// QueryChanged is sent when the question input changes.
type QueryChanged struct {
	Query string
}

// QueryRequested is a command to run the query pipeline.
type QueryRequested struct {
	Query string
}

// QueryCompleted carries the pipeline result back to the model.
// Result may hold partial data (a degraded answer) alongside a nil Err.
type QueryCompleted struct {
	Result *domain.QueryResult
	Err    error
}

// EventSelected is sent when an event in the results list is selected.
type EventSelected struct {
	Index int
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewQuery is the question input and results view.
	ViewQuery
	// ViewSources is the source catalogue view.
	ViewSources
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewQuery:
		return "query"
	case ViewSources:
		return "sources"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SourcesLoaded carries the catalogued source definitions from the registry.
type SourcesLoaded struct {
	Sources []domain.SourceDefinition
	Err     error
}

// SourceSelected signals a source was selected for detail display.
type SourceSelected struct {
	Source domain.SourceDefinition
}
