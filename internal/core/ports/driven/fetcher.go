package driven

import (
	"context"

	"github.com/vilabot/vilabot/internal/core/domain"
)

// Fetcher retrieves raw content for one source over the network.
// Implementations isolate transport failures behind domain.FetchError and
// make exactly one outbound call per invocation; the retry policy belongs
// to the aggregator, never to the fetcher.
type Fetcher interface {
	// Fetch builds the request URL for the source, substituting the
	// intent's keywords when the fetch kind asks for it, and returns the
	// response body. All failures are reported as *domain.FetchError.
	Fetch(ctx context.Context, source domain.SourceDefinition, intent domain.Intent) (*domain.RawContent, error)
}
