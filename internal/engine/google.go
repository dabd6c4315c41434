package engine

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/fetchclient"
)

// Google implements the Google web-search engine; SERP candidates sit in
// <div class="yuRUbf"> containers whose <a><h3> pair gives the link and
// title, per google_service.py's search_web.
type Google struct {
	base
}

func NewGoogle(cfg config.Config, client fetchclient.Client) *Google {
	e := &Google{}
	e.base = newBase("Google", cfg, client,
		func(query string) string { return cfg.GoogleURL + "?q=" + url.QueryEscape(query) },
		parseGoogleSERP)
	return e
}

func parseGoogleSERP(body string) []Link {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}
	var links []Link
	doc.Find("div.yuRUbf").Each(func(_ int, s *goquery.Selection) {
		a := s.Find("a").First()
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		title := strings.TrimSpace(a.Find("h3").First().Text())
		if title == "" {
			title = strings.TrimSpace(a.Text())
		}
		links = append(links, Link{Title: title, Href: strings.TrimSpace(href)})
	})
	return links
}
