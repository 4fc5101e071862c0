package mcp

import (
	"context"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vilabot/vilabot/internal/core/domain"
)

// FindEventsInput is the input schema for the find_events tool.
type FindEventsInput struct {
	Query string `json:"query" jsonschema:"natural-language question about events in Catalonia"`
}

// FindEventsOutput is the output schema for the find_events tool.
type FindEventsOutput struct {
	Answer         string              `json:"answer"`
	Events         []EventOutput       `json:"events"`
	SourcesQueried int                 `json:"sources_queried"`
	EventsFound    int                 `json:"events_found"`
	SourceErrors   []SourceErrorOutput `json:"source_errors,omitempty"`
}

// EventOutput represents a single aggregated event.
type EventOutput struct {
	Title       string `json:"title"`
	Date        string `json:"date,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Source      string `json:"source"`
	Link        string `json:"link,omitempty"`
}

// SourceErrorOutput reports a source that failed during aggregation.
type SourceErrorOutput struct {
	Source string `json:"source"`
	Kind   string `json:"kind"`
}

// ListSourcesInput is the input schema for the list_sources tool.
type ListSourcesInput struct {
	All bool `json:"all,omitempty" jsonschema:"include disabled sources"`
}

// ListSourcesOutput is the output schema for the list_sources tool.
type ListSourcesOutput struct {
	Sources []SourceInfoOutput `json:"sources"`
	Count   int                `json:"count"`
}

// SourceInfoOutput describes one catalogued source.
type SourceInfoOutput struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_events",
		Description: "Answer a natural-language question about events in Catalonia",
	}, s.handleFindEvents)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sources",
		Description: "List the configured event sources",
	}, s.handleListSources)
}

// handleFindEvents handles the find_events tool invocation.
func (s *Server) handleFindEvents(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindEventsInput,
) (*mcp.CallToolResult, FindEventsOutput, error) {
	result, err := s.ports.Query.HandleQuery(ctx, input.Query)
	if err != nil {
		return nil, FindEventsOutput{}, err
	}

	output := FindEventsOutput{
		Answer:         result.Answer,
		Events:         make([]EventOutput, len(result.Events)),
		SourcesQueried: result.SourcesQueried,
		EventsFound:    result.EventsFound,
	}

	for i := range result.Events {
		output.Events[i] = EventOutput{
			Title:       result.Events[i].Title,
			Date:        renderEventDate(result.Events[i]),
			Location:    result.Events[i].Location,
			Description: result.Events[i].Description,
			Category:    result.Events[i].Category,
			Source:      result.Events[i].SourceName,
			Link:        result.Events[i].SourceURL,
		}
	}

	// Sorted for deterministic output; SourceErrors is a map
	names := make([]string, 0, len(result.SourceErrors))
	for name := range result.SourceErrors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		output.SourceErrors = append(output.SourceErrors, SourceErrorOutput{
			Source: name,
			Kind:   result.SourceErrors[name].Kind.String(),
		})
	}

	return nil, output, nil
}

// handleListSources handles the list_sources tool invocation.
func (s *Server) handleListSources(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListSourcesInput,
) (*mcp.CallToolResult, ListSourcesOutput, error) {
	if s.ports.Sources == nil {
		return nil, ListSourcesOutput{Sources: []SourceInfoOutput{}}, nil
	}

	var definitions []domain.SourceDefinition
	if input.All {
		definitions = s.ports.Sources.List()
	} else {
		definitions = s.ports.Sources.ListEnabled()
	}

	output := ListSourcesOutput{
		Sources: make([]SourceInfoOutput, len(definitions)),
		Count:   len(definitions),
	}
	for i, def := range definitions {
		output.Sources[i] = SourceInfoOutput{
			Name:    def.Name,
			Kind:    def.Kind.String(),
			URL:     sourceURL(def),
			Enabled: def.Enabled,
		}
	}

	return nil, output, nil
}

// renderEventDate renders the event date for tool output.
func renderEventDate(event domain.Event) string {
	if event.StartTime != nil {
		return event.StartTime.Format("2006-01-02 15:04")
	}
	return event.RawDateText
}

// sourceURL picks the address a source is fetched from.
func sourceURL(def domain.SourceDefinition) string {
	if def.Kind.UsesSearchTemplate() {
		return def.SearchURLTemplate
	}
	return def.BaseURL
}
