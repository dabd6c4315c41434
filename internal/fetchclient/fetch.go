package fetchclient

import (
	"context"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/envelope"
	"github.com/5u5urrus/retriever/internal/extract"
	"github.com/5u5urrus/retriever/internal/headers"
)

// FetchResult is one url's outcome inside a ProcessFetch batch.
type FetchResult struct {
	URL   string `json:"url"`
	Data  string `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// ProcessFetch fetches every url in order through the given backend and
// returns exactly len(urls) results, one per url, regardless of individual
// failures — unlike the reference implementation's process_fetch, which
// returns on the first per-URL exception and silently drops the rest. The
// overall envelope is a 200 success whenever the backend itself resolved;
// per-url failures are carried in each FetchResult's Error field instead of
// aborting the batch.
func ProcessFetch(ctx context.Context, cfg config.Config, urls []string, kind Kind, hdrs headers.HttpHeaders, mode Mode) envelope.Envelope {
	if len(urls) == 0 {
		return envelope.Error(400, "urls must not be empty", nil)
	}
	if len(urls) > 20 {
		return envelope.Error(400, "at most 20 urls may be fetched per call", nil)
	}

	client, err := NewClient(kind, cfg)
	if err != nil {
		return envelope.Error(400, err.Error(), nil)
	}

	results := make([]FetchResult, len(urls))
	for i, u := range urls {
		results[i] = fetchOne(ctx, client, hdrs, cfg.DefaultRetries, u, mode)
	}
	return envelope.Success("fetched", results)
}

func fetchOne(ctx context.Context, client Client, hdrs headers.HttpHeaders, retries int, rawURL string, mode Mode) FetchResult {
	body, err := RunWithRetry(ctx, client, rawURL, EnhancedHeaders{Upstream: hdrs}, retries)
	if err != nil {
		return FetchResult{URL: rawURL, Error: err.Error()}
	}

	if mode == ModeHTML {
		return FetchResult{URL: rawURL, Data: string(body)}
	}

	text, err := extract.Text(string(body))
	if err != nil {
		return FetchResult{URL: rawURL, Error: err.Error()}
	}
	return FetchResult{URL: rawURL, Data: text}
}
