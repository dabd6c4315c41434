package headers_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5u5urrus/retriever/internal/headers"
)

func TestEnhance_UpstreamOverridableHeaderWins(t *testing.T) {
	// Arrange
	upstream := headers.HttpHeaders{"user-agent": "custom-agent/1.0"}

	// Act
	out := headers.Enhance("https://example.com/page", upstream)

	// Assert
	assert.Equal(t, "custom-agent/1.0", out["User-Agent"])
}

func TestEnhance_BaiduHostGetsBaiduCookieAndReferer(t *testing.T) {
	out := headers.Enhance("https://www.baidu.com/s?wd=test", nil)

	assert.Equal(t, "https://www.baidu.com/", out["Referer"])
	assert.True(t, strings.Contains(out["Cookie"], "BAIDUID="))
}

func TestEnhance_UnknownHostGetsNoHostHints(t *testing.T) {
	out := headers.Enhance("https://unrelated.example.com/", nil)

	assert.NotContains(t, out, "Sec-Fetch-Dest")
}

func TestCanonicalize_TitleCasesHyphenatedNames(t *testing.T) {
	assert.Equal(t, "User-Agent", headers.Canonicalize("user-agent"))
	assert.Equal(t, "Accept-Language", headers.Canonicalize("ACCEPT-LANGUAGE"))
}
