package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vilabot/vilabot/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Vilabot resources.
	uriScheme = "vilabot://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing sources.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "List of all catalogued event sources",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	// Template for one source definition.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sources/{name}",
		Name:        "source-definition",
		Description: "Full definition of a specific event source, selectors included",
		MIMEType:    "application/json",
	}, s.handleSourceDefinitionResource)
}

// handleSourcesResource returns a list of all catalogued sources.
func (s *Server) handleSourcesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Sources == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	definitions := s.ports.Sources.List()

	infos := make([]SourceInfoOutput, len(definitions))
	for i, def := range definitions {
		infos[i] = SourceInfoOutput{
			Name:    def.Name,
			Kind:    def.Kind.String(),
			URL:     sourceURL(def),
			Enabled: def.Enabled,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sources: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSourceDefinitionResource returns the full definition of one source.
func (s *Server) handleSourceDefinitionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Sources == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract name from URI: vilabot://sources/{name}
	name := extractSourceName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	def, err := s.ports.Sources.Get(name)
	if err != nil {
		if errors.Is(err, domain.ErrSourceNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting source: %w", err)
	}

	type definitionDetail struct {
		Name              string            `json:"name"`
		Kind              string            `json:"kind"`
		BaseURL           string            `json:"base_url,omitempty"`
		SearchURLTemplate string            `json:"search_url_template,omitempty"`
		Selectors         map[string]string `json:"selectors,omitempty"`
		Enabled           bool              `json:"enabled"`
	}

	detail := definitionDetail{
		Name:              def.Name,
		Kind:              def.Kind.String(),
		BaseURL:           def.BaseURL,
		SearchURLTemplate: def.SearchURLTemplate,
		Selectors:         def.Selectors,
		Enabled:           def.Enabled,
	}

	data, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling source definition: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSourceName extracts the source name from a URI like vilabot://sources/{name}.
func extractSourceName(uri string) string {
	const prefix = uriScheme + "sources/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}

	return name
}
