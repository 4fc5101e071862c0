// Package mcp provides an MCP (Model Context Protocol) server adapter for Vilabot.
// It enables AI assistants like Claude to answer questions about events in
// Catalonia through Vilabot's aggregation pipeline.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
