package engine

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/fetchclient"
)

// So implements the 360 Search (so.com) engine. Result anchors are wrapped
// in a redirect-tracking link, so each candidate is resolved to its real
// target with a synchronous HEAD request before filtering, per
// so_service.py's _get_real_url.
//
// The HEAD resolution stays synchronous and per-candidate exactly as the
// reference implementation does it, but bounded two ways so a slow or
// unresponsive redirect chain can't stall a whole search call: each HEAD
// uses a client with its own timeout of half the configured
// DEFAULT_TIMEOUT, and parsing stops after the first MAX_RESULTS
// candidates, so at most that many HEAD requests are made per SERP.
type So struct {
	base
	headClient *http.Client
}

func NewSo(cfg config.Config, client fetchclient.Client) *So {
	e := &So{headClient: &http.Client{Timeout: cfg.DefaultTimeout / 2}}
	e.base = newBase("So", cfg, client,
		func(query string) string { return cfg.SoURL + "?q=" + url.QueryEscape(query) },
		e.parseSoSERP)
	return e
}

func (e *So) parseSoSERP(body string) []Link {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}
	var links []Link
	doc.Find("h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(links) >= e.cfg.MaxResults {
			return false
		}
		a := s.Find("a").First()
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return true
		}
		links = append(links, Link{Title: strings.TrimSpace(a.Text()), Href: e.resolveRealURL(strings.TrimSpace(href))})
		return true
	})
	return links
}

func (e *So) resolveRealURL(rawURL string) string {
	req, err := http.NewRequest(http.MethodHead, rawURL, nil)
	if err != nil {
		return rawURL
	}
	resp, err := e.headClient.Do(req)
	if err != nil {
		return rawURL
	}
	defer resp.Body.Close()
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String()
	}
	return rawURL
}
