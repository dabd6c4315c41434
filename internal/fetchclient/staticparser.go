package fetchclient

import (
	"context"
	"time"

	"github.com/5u5urrus/retriever/internal/extract"
	"github.com/5u5urrus/retriever/internal/headers"
)

// StaticParser fetches over plain HTTP and returns the body reduced to
// text by internal/extract inline — grounded on the reference system's
// BeautifulSoupClient (requests.get + soup.get_text()).
type StaticParser struct {
	direct *DirectHTTP
}

func NewStaticParser(timeout time.Duration) *StaticParser {
	return &StaticParser{direct: NewDirectHTTP(timeout)}
}

func (c *StaticParser) Name() string { return "StaticParser" }

func (c *StaticParser) Fetch(ctx context.Context, rawURL string, hdrs headers.HttpHeaders) ([]byte, int, error) {
	body, status, err := c.direct.Fetch(ctx, rawURL, hdrs)
	if err != nil {
		return nil, status, err
	}
	text, err := extract.Text(string(body))
	if err != nil {
		return body, status, err
	}
	return []byte(text), status, nil
}
