package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5u5urrus/retriever/internal/extract"
)

func TestText_DropsScriptAndCollapsesBlankLines(t *testing.T) {
	// Arrange
	in := "<html><script>x</script><p>Hello\n\n\nWorld</p></html>"

	// Act
	out, err := extract.Text(in)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Hello\n\nWorld", out)
}

func TestText_DropsStyleHeadAndComments(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"style", "<html><style>.a{color:red}</style><p>Visible</p></html>", "Visible"},
		{"head title meta", "<html><head><title>T</title><meta charset='utf-8'></head><body><p>Body text</p></body></html>", "Body text"},
		{"comment", "<html><p>Before<!-- hidden -->After</p></html>", "Before\nAfter"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := extract.Text(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestText_CollapsesRunsOfSpacesAndPunctuationSpacing(t *testing.T) {
	in := "<p>Too    many   spaces .</p>"
	out, err := extract.Text(in)
	require.NoError(t, err)
	assert.Equal(t, "Too many spaces.", out)
}
