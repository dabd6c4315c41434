package fetchclient

import (
	"github.com/5u5urrus/retriever/internal/config"
)

// NewClient builds the concrete Client for kind, wiring in the process
// config the same set of backends need (timeouts, AGENT_URL, API keys).
func NewClient(kind Kind, cfg config.Config) (Client, error) {
	switch kind {
	case KindDirectHTTP:
		return NewDirectHTTP(cfg.DefaultTimeout), nil
	case KindCommandLine:
		return NewCommandLine(cfg.DefaultTimeout), nil
	case KindProxyGateway:
		return NewProxyGateway(cfg.AgentURL, cfg.DefaultTimeout), nil
	case KindHeadlessA:
		return NewHeadlessChromedp(cfg.DefaultTimeout), nil
	case KindHeadlessB:
		return NewHeadlessCDP(cfg.DefaultTimeout), nil
	case KindChallengeSolver:
		return NewChallengeSolver(cfg.DefaultTimeout), nil
	case KindRenderAPI:
		return NewRenderAPI(cfg.FirecrawlAPIKey, cfg.DefaultTimeout), nil
	case KindCrawlerFramework:
		return NewCrawlerFramework(cfg.DefaultTimeout), nil
	case KindStaticParser:
		return NewStaticParser(cfg.DefaultTimeout), nil
	default:
		return nil, &UnknownBackendError{Kind: string(kind)}
	}
}

// UnknownBackendError reports a Kind with no registered Client.
type UnknownBackendError struct {
	Kind string
}

func (e *UnknownBackendError) Error() string {
	return "unknown fetch backend: " + e.Kind
}
