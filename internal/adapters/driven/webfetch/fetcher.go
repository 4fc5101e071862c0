// Package webfetch provides the outbound HTTP fetcher for event sources.
package webfetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/vilabot/vilabot/internal/core/domain"
	"github.com/vilabot/vilabot/internal/core/ports/driven"
	"github.com/vilabot/vilabot/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw source content over HTTP.
// It performs exactly one outbound request per Fetch call; retry policy
// belongs to the caller.
type Fetcher struct {
	client   *http.Client
	settings domain.FetchSettings
	limiter  *HostLimiter
}

// NewFetcher creates a new HTTP fetcher. Zero-valued settings fall back
// to the application defaults.
func NewFetcher(settings domain.FetchSettings) *Fetcher {
	defaults := domain.DefaultAppSettings().Fetch
	if settings.Timeout <= 0 {
		settings.Timeout = defaults.Timeout
	}
	if settings.MaxBodyBytes <= 0 {
		settings.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if settings.UserAgent == "" {
		settings.UserAgent = defaults.UserAgent
	}

	return &Fetcher{
		client:   &http.Client{Timeout: settings.Timeout},
		settings: settings,
		limiter:  NewHostLimiter(settings.RatePerHost, settings.Burst),
	}
}

// Fetch retrieves the source's content for the given intent.
// All failures come back as *domain.FetchError.
func (f *Fetcher) Fetch(
	ctx context.Context, source domain.SourceDefinition, intent domain.Intent,
) (*domain.RawContent, error) {
	requestURL := RequestURL(source, intent)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, &domain.FetchError{
			SourceName: source.Name,
			Kind:       domain.FetchUnreachable,
			Err:        err,
		}
	}
	req.Header.Set("User-Agent", f.settings.UserAgent)
	req.Header.Set("Accept", "text/html,application/json,text/calendar;q=0.9,*/*;q=0.8")

	if err := f.limiter.Wait(ctx, req.URL.Host); err != nil {
		return nil, f.classify(source.Name, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.classify(source.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.FetchError{
			SourceName: source.Name,
			Kind:       domain.FetchHTTPStatus,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.settings.MaxBodyBytes+1))
	if err != nil {
		return nil, f.classify(source.Name, err)
	}
	if int64(len(body)) > f.settings.MaxBodyBytes {
		return nil, &domain.FetchError{
			SourceName: source.Name,
			Kind:       domain.FetchTooLarge,
		}
	}

	// The final URL after redirects is what relative links resolve against.
	finalURL := requestURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	logger.Debug("Fetched %s: %d bytes from %s", source.Name, len(body), finalURL)

	return &domain.RawContent{
		SourceName:  source.Name,
		URL:         finalURL,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// RequestURL builds the URL for one fetch. Search templates get the
// intent keywords escaped into the keywords placeholder; the other kinds
// use the base URL as-is.
func RequestURL(source domain.SourceDefinition, intent domain.Intent) string {
	if source.Kind.UsesSearchTemplate() {
		keywords := url.QueryEscape(intent.KeywordString())
		return strings.ReplaceAll(source.SearchURLTemplate, domain.KeywordsPlaceholder, keywords)
	}
	return source.BaseURL
}

// classify maps a transport error onto a FetchError kind.
func (f *Fetcher) classify(sourceName string, err error) *domain.FetchError {
	kind := domain.FetchUnreachable

	var nerr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kind = domain.FetchTimeout
	case errors.As(err, &nerr) && nerr.Timeout():
		kind = domain.FetchTimeout
	}

	return &domain.FetchError{SourceName: sourceName, Kind: kind, Err: err}
}
