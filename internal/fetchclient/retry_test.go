package fetchclient_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5u5urrus/retriever/internal/envelope"
	"github.com/5u5urrus/retriever/internal/fetchclient"
	"github.com/5u5urrus/retriever/internal/headers"
)

type stubClient struct {
	name      string
	responses []stubResponse
	calls     int
}

type stubResponse struct {
	body   []byte
	status int
	err    error
}

func (s *stubClient) Name() string { return s.name }

func (s *stubClient) Fetch(_ context.Context, _ string, _ headers.HttpHeaders) ([]byte, int, error) {
	r := s.responses[s.calls]
	s.calls++
	return r.body, r.status, r.err
}

func TestRunWithRetry_SucceedsOnThirdAttemptAfterTwoAntiBotStatuses(t *testing.T) {
	// Arrange
	client := &stubClient{
		name: "stub",
		responses: []stubResponse{
			{status: 503},
			{status: 503},
			{body: []byte("ok"), status: 200},
		},
	}

	// Act
	body, err := fetchclient.RunWithRetry(context.Background(), client, "https://example.com", fetchclient.EnhancedHeaders{}, 3)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, 3, client.calls)
}

func TestRunWithRetry_ExhaustsBudgetAndReturnsUpstreamFetchFailed(t *testing.T) {
	client := &stubClient{
		name: "stub",
		responses: []stubResponse{
			{err: errors.New("timeout")},
			{err: errors.New("timeout")},
			{err: errors.New("timeout")},
		},
	}

	_, err := fetchclient.RunWithRetry(context.Background(), client, "https://example.com", fetchclient.EnhancedHeaders{}, 3)

	var upstreamErr *envelope.UpstreamFetchFailedError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "stub", upstreamErr.ClientName)
	assert.Equal(t, 3, client.calls)
}

func TestRunWithRetry_AcceptsNonAntiBotNonServerErrorStatusImmediately(t *testing.T) {
	client := &stubClient{
		name: "stub",
		responses: []stubResponse{
			{body: []byte("not found body"), status: 404},
		},
	}

	body, err := fetchclient.RunWithRetry(context.Background(), client, "https://example.com", fetchclient.EnhancedHeaders{}, 3)

	require.NoError(t, err)
	assert.Equal(t, "not found body", string(body))
	assert.Equal(t, 1, client.calls)
}
