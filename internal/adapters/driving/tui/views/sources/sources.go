// Package sources provides the source catalogue view for the TUI.
package sources

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vilabot/vilabot/internal/adapters/driving/tui/messages"
	"github.com/vilabot/vilabot/internal/adapters/driving/tui/styles"
	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driving"
)

// View is the source catalogue view. The registry is read-only; sources
// are edited in the catalogue file and picked up at the next start.
type View struct {
	styles   *styles.Styles
	registry driving.SourceRegistry

	sources  []domain.SourceDefinition
	selected int
	expanded bool
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new sources view.
func NewView(s *styles.Styles, registry driving.SourceRegistry) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		registry: registry,
		sources:  []domain.SourceDefinition{},
	}
}

// Init initialises the view and loads the catalogued sources.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadSources()
}

// loadSources returns a command that loads definitions from the registry.
func (v *View) loadSources() tea.Cmd {
	return func() tea.Msg {
		if v.registry == nil {
			return messages.SourcesLoaded{Err: fmt.Errorf("source registry not available")}
		}
		return messages.SourcesLoaded{Sources: v.registry.List(), Err: nil}
	}
}

// Update handles messages for the sources view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SourcesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.sources = msg.Sources
			v.err = nil
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.expanded = false
		}
	case "down", "j":
		if v.selected < len(v.sources)-1 {
			v.selected++
			v.expanded = false
		}
	case "enter":
		// Toggle the definition detail for the selected source
		if len(v.sources) > 0 && v.selected < len(v.sources) {
			v.expanded = !v.expanded
		}
	}

	return v, nil
}

// View renders the sources view.
func (v *View) View() string {
	var b strings.Builder

	// Title
	b.WriteString(v.styles.Title.Render("Sources"))
	b.WriteString("\n\n")

	// Loading state
	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading sources..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Error state
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Empty state
	if len(v.sources) == 0 {
		b.WriteString(v.styles.Muted.Render("No sources catalogued."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Sources list
	for i := range v.sources {
		line := v.renderSource(i, &v.sources[i])
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Definition detail for the selected source
	if v.expanded && v.selected < len(v.sources) {
		b.WriteString("\n")
		b.WriteString(v.renderDetail(&v.sources[v.selected]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderSource renders a single source line.
func (v *View) renderSource(index int, def *domain.SourceDefinition) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	state := v.styles.Muted.Render("disabled")
	if def.Enabled {
		state = v.styles.Success.Render("enabled")
	}

	name := def.Name
	if index == v.selected {
		name = v.styles.Selected.Render(name)
	} else {
		name = v.styles.Normal.Render(name)
	}

	kind := v.styles.Muted.Render(string(def.Kind))

	return fmt.Sprintf("%s%s  %s  %s", indicator, name, kind, state)
}

// renderDetail renders the full definition of a source.
func (v *View) renderDetail(def *domain.SourceDefinition) string {
	lines := make([]string, 0, 8)

	url := def.BaseURL
	if def.Kind.UsesSearchTemplate() {
		url = def.SearchURLTemplate
	}
	lines = append(lines, v.styles.Subtitle.Render(def.Name))
	lines = append(lines, v.styles.Normal.Render("Kind: ")+v.styles.Muted.Render(string(def.Kind)))
	lines = append(lines, v.styles.Normal.Render("URL:  ")+v.styles.Muted.Render(url))

	if len(def.Selectors) > 0 {
		lines = append(lines, v.styles.Normal.Render("Selectors:"))
		keys := make([]string, 0, len(def.Selectors))
		for k := range def.Selectors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("  %s: %s", k, def.Selectors[k])))
		}
	}

	content := strings.Join(lines, "\n")

	return v.styles.Border.
		Padding(0, 1).
		Render(content)
}

// renderHelp renders the keybinding hints for this view.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[j/k] Navigate  [Enter] Details  [Esc] Back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Sources returns the loaded source definitions.
func (v *View) Sources() []domain.SourceDefinition {
	return v.sources
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Expanded returns whether the definition detail is shown.
func (v *View) Expanded() bool {
	return v.expanded
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
