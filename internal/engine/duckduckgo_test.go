package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripUddgWrapper_DecodesWrappedTargetAndDropsTail(t *testing.T) {
	// Arrange
	href := "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fpage&rut=abc123"

	// Act
	got := stripUddgWrapper(href)

	// Assert
	assert.Equal(t, "https://example.com/page", got)
}

func TestStripUddgWrapper_PassesThroughWhenNoUddgParam(t *testing.T) {
	href := "https://example.com/direct"
	assert.Equal(t, href, stripUddgWrapper(href))
}

func TestParseDuckDuckGoSERP_UnwrapsAnchorsBeforeReturning(t *testing.T) {
	// Arrange
	body := `<html><body>
		<a href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Farticle&rut=x">Example</a>
	</body></html>`

	// Act
	links := parseDuckDuckGoSERP(body)

	// Assert
	assert.Len(t, links, 1)
	assert.Equal(t, "https://example.com/article", links[0].Href)
}
