package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/fetchclient"
	"github.com/5u5urrus/retriever/internal/registry"
)

func TestGet_MemoizesByEngineAndBackend(t *testing.T) {
	// Arrange
	r := registry.New(config.Config{DefaultRetries: 1, DefaultTimeout: 1})

	// Act
	first, err := r.Get("baidu", fetchclient.KindDirectHTTP, false)
	require.NoError(t, err)
	second, err := r.Get("baidu", fetchclient.KindDirectHTTP, false)
	require.NoError(t, err)
	third, err := r.Get("baidu", fetchclient.KindStaticParser, false)
	require.NoError(t, err)

	// Assert
	assert.Same(t, first, second, "same engine+backend key should return the memoized instance")
	assert.NotSame(t, first, third, "different backend should produce a distinct cache entry")
}

func TestGet_UnknownEngineReturnsError(t *testing.T) {
	r := registry.New(config.Config{})
	_, err := r.Get("not-a-real-engine", fetchclient.KindDirectHTTP, false)
	require.Error(t, err)
}

func TestDuckDuckGo_ReturnsConcreteTypeForSearchSuggest(t *testing.T) {
	r := registry.New(config.Config{DefaultRetries: 1, DefaultTimeout: 1})
	ddg, err := r.DuckDuckGo(fetchclient.KindDirectHTTP, false)
	require.NoError(t, err)
	assert.NotNil(t, ddg)
}

func TestGet_ForceNewBypassesCacheAndReplacesEntry(t *testing.T) {
	// Arrange
	r := registry.New(config.Config{DefaultRetries: 1, DefaultTimeout: 1})
	first, err := r.Get("baidu", fetchclient.KindDirectHTTP, false)
	require.NoError(t, err)

	// Act
	fresh, err := r.Get("baidu", fetchclient.KindDirectHTTP, true)
	require.NoError(t, err)
	cached, err := r.Get("baidu", fetchclient.KindDirectHTTP, false)
	require.NoError(t, err)

	// Assert
	assert.NotSame(t, first, fresh, "force_new should bypass the cached instance")
	assert.Same(t, fresh, cached, "force_new should replace the cache entry with the fresh instance")
}
