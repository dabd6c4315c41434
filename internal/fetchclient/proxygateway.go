package fetchclient

import (
	"context"
	"net/url"
	"time"

	"github.com/5u5urrus/retriever/internal/envelope"
	"github.com/5u5urrus/retriever/internal/headers"
)

// ProxyGateway fetches through a configured upstream proxy/agent service,
// grounded on the reference system's AgentClient (`{agent_url}?url={target}`).
type ProxyGateway struct {
	direct   *DirectHTTP
	agentURL string
}

func NewProxyGateway(agentURL string, timeout time.Duration) *ProxyGateway {
	return &ProxyGateway{direct: NewDirectHTTP(timeout), agentURL: agentURL}
}

func (c *ProxyGateway) Name() string { return "ProxyGateway" }

func (c *ProxyGateway) Fetch(ctx context.Context, rawURL string, hdrs headers.HttpHeaders) ([]byte, int, error) {
	if c.agentURL == "" {
		return nil, 0, &envelope.BackendUnavailableError{Reason: "AGENT_URL is not configured"}
	}
	proxied := c.agentURL + "?url=" + url.QueryEscape(rawURL)
	return c.direct.Fetch(ctx, proxied, hdrs)
}
