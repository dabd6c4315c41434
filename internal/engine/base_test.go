package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/envelope"
	"github.com/5u5urrus/retriever/internal/headers"
)

type stubSecondaryClient struct {
	fail map[string]bool
}

func (s *stubSecondaryClient) Name() string { return "stubSecondaryClient" }

func (s *stubSecondaryClient) Fetch(_ context.Context, rawURL string, _ headers.HttpHeaders) ([]byte, int, error) {
	if s.fail[rawURL] {
		return nil, 0, errors.New("boom")
	}
	return []byte("<p>" + rawURL + "</p>"), 200, nil
}

func TestFetchSecondary_DropsFailedURLsFromOutput(t *testing.T) {
	// Arrange
	client := &stubSecondaryClient{fail: map[string]bool{"https://bad.example": true}}
	b := newBase("Stub", config.Config{DefaultRetries: 1}, client, nil, nil)
	urls := []string{"https://good.example", "https://bad.example"}

	// Act
	results := b.fetchSecondary(context.Background(), urls, nil)

	// Assert
	assert.Len(t, results, 1, "error-only results must be dropped, not surfaced with an error field")
	assert.Equal(t, "https://good.example", results[0].URL)
}

func TestUpstreamFailureCode_MapsExhaustedRetryBudgetTo502(t *testing.T) {
	err := &envelope.UpstreamFetchFailedError{ClientName: "stub", URL: "https://example.com", LastReason: "timeout"}
	assert.Equal(t, 502, upstreamFailureCode(err))
}

func TestUpstreamFailureCode_MapsOtherErrorsTo500(t *testing.T) {
	assert.Equal(t, 500, upstreamFailureCode(errors.New("parse failure")))
}
