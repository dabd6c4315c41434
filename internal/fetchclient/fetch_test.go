package fetchclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/headers"
)

type orderedStub struct {
	fail map[string]bool
}

func (s *orderedStub) Name() string { return "orderedStub" }

func (s *orderedStub) Fetch(_ context.Context, rawURL string, _ headers.HttpHeaders) ([]byte, int, error) {
	if s.fail[rawURL] {
		return nil, 0, errStubFailure
	}
	return []byte("<p>" + rawURL + "</p>"), 200, nil
}

var errStubFailure = &UnknownBackendError{Kind: "stub-failure"}

func TestFetchOne_SucceedsInTextMode(t *testing.T) {
	client := &orderedStub{fail: map[string]bool{}}
	result := fetchOne(context.Background(), client, nil, 3, "https://a.example", ModeText)
	assert.Equal(t, "https://a.example", result.URL)
	assert.Equal(t, "https://a.example", result.Data)
	assert.Empty(t, result.Error)
}

func TestFetchOne_CarriesErrorWithoutAbortingCaller(t *testing.T) {
	client := &orderedStub{fail: map[string]bool{"https://b.example": true}}
	result := fetchOne(context.Background(), client, nil, 1, "https://b.example", ModeText)
	assert.Equal(t, "https://b.example", result.URL)
	assert.Empty(t, result.Data)
	assert.NotEmpty(t, result.Error)
}

// TestFetchOne_InOrderLoopReturnsOneResultPerURLEvenWhenSomeFail asserts
// the corrected batch semantics by running fetchOne over each url in the
// same loop ProcessFetch uses (ProcessFetch itself builds its client from
// a Kind, so a stub cannot be injected there): every url gets exactly one
// result, in order, regardless of individual failures partway through.
func TestFetchOne_InOrderLoopReturnsOneResultPerURLEvenWhenSomeFail(t *testing.T) {
	client := &orderedStub{fail: map[string]bool{"https://fails.example": true}}
	urls := []string{"https://a.example", "https://fails.example", "https://c.example"}

	results := make([]FetchResult, len(urls))
	for i, u := range urls {
		results[i] = fetchOne(context.Background(), client, nil, 1, u, ModeText)
	}

	assert.Len(t, results, 3)
	assert.Equal(t, "https://a.example", results[0].URL)
	assert.Empty(t, results[0].Error)
	assert.Equal(t, "https://fails.example", results[1].URL)
	assert.NotEmpty(t, results[1].Error)
	assert.Equal(t, "https://c.example", results[2].URL)
	assert.Empty(t, results[2].Error)
}

func TestProcessFetch_RejectsEmptyURLsWithoutTouchingNetwork(t *testing.T) {
	env := ProcessFetch(context.Background(), config.Config{}, nil, KindDirectHTTP, nil, ModeText)
	assert.Equal(t, 400, env.Code)
}

func TestProcessFetch_RejectsMoreThanTwentyURLs(t *testing.T) {
	urls := make([]string, 21)
	for i := range urls {
		urls[i] = "https://example.test/" + string(rune('a'+i))
	}
	env := ProcessFetch(context.Background(), config.Config{}, urls, KindDirectHTTP, nil, ModeText)
	assert.Equal(t, 400, env.Code)
}
