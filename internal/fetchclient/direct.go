package fetchclient

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"

	"github.com/5u5urrus/retriever/internal/headers"
)

// DirectHTTP fetches with a pooled net/http client, grounded on the
// reference system's SimpleHTTPClient (requests.Session + HTTPAdapter pool
// sizing) and on the teacher's DefaultHTTPTransport in spider.go.
type DirectHTTP struct {
	httpClient *http.Client
}

func NewDirectHTTP(timeout time.Duration) *DirectHTTP {
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
	}
	return &DirectHTTP{httpClient: &http.Client{Transport: transport, Timeout: timeout}}
}

func (c *DirectHTTP) Name() string { return "DirectHTTP" }

func (c *DirectHTTP) Fetch(ctx context.Context, rawURL string, hdrs headers.HttpHeaders) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	for k, v := range hdrs {
		req.Header.Set(k, v)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
