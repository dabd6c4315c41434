package fetchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/5u5urrus/retriever/internal/headers"
)

// RenderAPI calls a Firecrawl-compatible scrape API, grounded on the
// reference system's FirecrawlClient (scrape_url with formats:['html'] and
// a metadata.statusCode field on the JSON response).
type RenderAPI struct {
	httpClient *http.Client
	apiKey     string
}

func NewRenderAPI(apiKey string, timeout time.Duration) *RenderAPI {
	return &RenderAPI{httpClient: &http.Client{Timeout: timeout}, apiKey: apiKey}
}

func (c *RenderAPI) Name() string { return "RenderAPI" }

type renderAPIRequest struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	Formats []string          `json:"formats"`
}

type renderAPIResponse struct {
	HTML     string `json:"html"`
	Metadata struct {
		StatusCode int `json:"statusCode"`
	} `json:"metadata"`
}

func (c *RenderAPI) Fetch(ctx context.Context, rawURL string, hdrs headers.HttpHeaders) ([]byte, int, error) {
	payload, err := json.Marshal(renderAPIRequest{URL: rawURL, Headers: hdrs, Formats: []string{"html"}})
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.firecrawl.dev/v1/scrape", bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	var decoded renderAPIResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return raw, resp.StatusCode, nil
	}
	status := decoded.Metadata.StatusCode
	if status == 0 {
		status = resp.StatusCode
	}
	return []byte(decoded.HTML), status, nil
}
