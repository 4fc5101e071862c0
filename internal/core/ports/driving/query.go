package driving

import (
	"context"

	"github.com/vilabot/vilabot/internal/core/domain"
)

// QueryService answers natural-language event queries.
// This is the single entry point the CLI, the TUI and the MCP server all
// consume.
type QueryService interface {
	// HandleQuery runs the full pipeline for one query: intent extraction,
	// source fan-out, merge and filter, answer synthesis. The returned
	// result carries partial data whenever any is available; only a
	// pre-aggregation hard failure produces an error.
	HandleQuery(ctx context.Context, text string) (*domain.QueryResult, error)
}
