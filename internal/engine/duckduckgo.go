package engine

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/envelope"
	"github.com/5u5urrus/retriever/internal/fetchclient"
	"github.com/5u5urrus/retriever/internal/headers"
)

// DuckDuckGo implements the DuckDuckGo web-search engine against the
// lightweight lite.duckduckgo.com SERP (every <a href> on the page is a
// candidate, then filtered by allowed domain same as every other engine),
// per duckduckgo_service.py's search_web.
type DuckDuckGo struct {
	base
	client  fetchclient.Client
	apiURL  string
	retries int
}

func NewDuckDuckGo(cfg config.Config, client fetchclient.Client) *DuckDuckGo {
	e := &DuckDuckGo{client: client, apiURL: cfg.DuckDuckGoAPIURL, retries: cfg.DefaultRetries}
	e.base = newBase("DuckDuckGo", cfg, client,
		func(query string) string { return cfg.LiteDuckDuckGoURL + "?q=" + url.QueryEscape(query) + "&kl=cn-zh" },
		parseDuckDuckGoSERP)
	return e
}

func parseDuckDuckGoSERP(body string) []Link {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}
	var links []Link
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		links = append(links, Link{Title: strings.TrimSpace(s.Text()), Href: stripUddgWrapper(href)})
	})
	return links
}

// stripUddgWrapper unwraps lite.duckduckgo.com's redirect links
// (".../l/?uddg=<encoded-target>&rut=...") down to the decoded target URL,
// per _filter_web_links. hrefs with no uddg parameter pass through unchanged.
func stripUddgWrapper(href string) string {
	_, tail, found := strings.Cut(href, "uddg=")
	if !found {
		return href
	}
	tail, _, _ = strings.Cut(tail, "&")
	decoded, err := url.QueryUnescape(tail)
	if err != nil {
		return href
	}
	return decoded
}

// SearchSuggest hits the autocomplete API directly, supplementing
// search_suggest from the reference system (dropped from the distilled
// specification but present in the original and cheap to carry forward).
func (e *DuckDuckGo) SearchSuggest(ctx context.Context, query string, hdrs headers.HttpHeaders) envelope.Envelope {
	apiURL := e.apiURL + "?q=" + url.QueryEscape(query) + "&type=json"
	body, err := fetchclient.RunWithRetry(ctx, e.client, apiURL, fetchclient.EnhancedHeaders{Upstream: hdrs}, e.retries)
	if err != nil {
		return envelope.Error(upstreamFailureCode(err), "search_suggest failed", err.Error())
	}

	var suggestions any
	if err := json.Unmarshal(body, &suggestions); err != nil {
		return envelope.Error(500, "could not decode autocomplete response", err.Error())
	}
	return envelope.Success("autocomplete suggestions retrieved", suggestions)
}
