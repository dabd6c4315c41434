// Package fetchclient implements the nine fetch backends named in the
// retrieval specification and the shared retry/anti-bot-detection loop
// that drives all of them.
package fetchclient

import (
	"context"

	"github.com/5u5urrus/retriever/internal/headers"
)

// Kind identifies a fetch backend. String values match the wire names the
// CLI and envelope data accept, mirroring the reference system's
// FetchClientType string enum.
type Kind string

const (
	KindDirectHTTP       Kind = "DIRECT_HTTP"
	KindCommandLine      Kind = "COMMAND_LINE"
	KindProxyGateway     Kind = "PROXY_GATEWAY"
	KindHeadlessA        Kind = "HEADLESS_BROWSER_A"
	KindHeadlessB        Kind = "HEADLESS_BROWSER_B"
	KindChallengeSolver  Kind = "CHALLENGE_SOLVER"
	KindRenderAPI        Kind = "RENDER_API"
	KindCrawlerFramework Kind = "CRAWLER_FRAMEWORK"
	KindStaticParser     Kind = "STATIC_PARSER"
)

// Mode selects whether ProcessFetch returns extracted text or raw HTML.
type Mode string

const (
	ModeText Mode = "text"
	ModeHTML Mode = "html"
)

// antiBotStatusCodes are the HTTP statuses that make a response count as a
// suspected anti-bot challenge rather than a plain failure, regardless of
// whether the backend returned a body.
var antiBotStatusCodes = map[int]bool{
	403: true,
	429: true,
	503: true,
}

// IsAntiBotStatus reports whether status is one of the suspected anti-bot
// codes. RunWithRetry retries these with the same backoff as any other
// failed attempt and additionally logs an anti-bot warning.
func IsAntiBotStatus(status int) bool {
	return antiBotStatusCodes[status]
}

// HeaderSource builds the per-request header set for a given URL, letting
// RunWithRetry stay decoupled from the headers package's synthesis details.
type HeaderSource interface {
	Build(rawURL string) headers.HttpHeaders
}

// EnhancedHeaders adapts headers.Enhance to the HeaderSource contract,
// capturing the caller-supplied upstream headers once per fetch call.
type EnhancedHeaders struct {
	Upstream headers.HttpHeaders
}

func (h EnhancedHeaders) Build(rawURL string) headers.HttpHeaders {
	return headers.Enhance(rawURL, h.Upstream)
}

// Client is the contract every backend implements: fetch one URL once and
// report the raw body, the HTTP status observed (0 if none), and an error.
// Client.Fetch must not itself retry — RunWithRetry owns the retry loop.
type Client interface {
	Name() string
	Fetch(ctx context.Context, rawURL string, hdrs headers.HttpHeaders) (body []byte, status int, err error)
}
