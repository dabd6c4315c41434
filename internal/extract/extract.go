// Package extract implements the HTML-to-text purification pipeline
// shared by every fetch backend's "text" response mode, grounded on
// base_search.py's extract_content_text: strip invisible tags and
// comments, walk the remaining text nodes writing each trimmed node
// followed by a newline, then normalize whitespace with an ordered set of regex
// rules.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// excludedTags never contribute visible text and are dropped outright,
// matching extract_content_text's excluded_tags list.
var excludedTags = []string{
	"script", "style", "head", "title", "meta",
	"nav", "footer", "header", "iframe", "noscript",
	"svg", "button", "input", "textarea", "select",
	"link", "img", "figure", "aside",
}

// cleanRules is applied in order, mirroring extract_content_text's
// clean_rules list exactly (merge blank lines, merge runs of spaces,
// drop space before punctuation, clean blank lines that hold only
// whitespace).
var cleanRules = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
	{regexp.MustCompile(`[ \t]{2,}`), " "},
	{regexp.MustCompile(`\s+([.!?])`), "$1"},
	{regexp.MustCompile(`\n\s+\n`), "\n\n"},
}

// Text converts rawHTML into normalized visible text.
func Text(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}
	for _, tag := range excludedTags {
		doc.Find(tag).Remove()
	}

	var b strings.Builder
	doc.Contents().Each(func(_ int, s *goquery.Selection) {
		walk(s.Nodes, &b)
	})

	out := b.String()
	for _, rule := range cleanRules {
		out = rule.pattern.ReplaceAllString(out, rule.repl)
	}
	return strings.TrimSpace(out), nil
}

// walk appends every text node under nodes to b, separated by newlines.
// HTML comments are a distinct node.CommentNode type and are skipped
// naturally rather than needing an explicit removal pass.
func walk(nodes []*html.Node, b *strings.Builder) {
	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				b.WriteString(trimmed)
				b.WriteByte('\n')
			}
		case html.ElementNode:
			var children []*html.Node
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				children = append(children, c)
			}
			walk(children, b)
		}
	}
}
