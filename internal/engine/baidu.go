package engine

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/fetchclient"
)

// Baidu implements the Baidu web-search engine; SERP candidates sit in
// <h3 class="t"> anchors, per baidu_service.py's search_web.
type Baidu struct {
	base
}

func NewBaidu(cfg config.Config, client fetchclient.Client) *Baidu {
	e := &Baidu{}
	e.base = newBase("Baidu", cfg, client,
		func(query string) string { return cfg.BaiduURL + "?wd=" + url.QueryEscape(query) },
		parseByAnchorContainer("h3.t"))
	return e
}

// parseByAnchorContainer returns a parseSERPFunc that finds containerSelector
// elements, and within each takes the first <a href> as one candidate —
// the shape every BeautifulSoup-based *_service.py SERP parser shares.
func parseByAnchorContainer(containerSelector string) parseSERPFunc {
	return func(body string) []Link {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		if err != nil {
			return nil
		}
		var links []Link
		doc.Find(containerSelector).Each(func(_ int, s *goquery.Selection) {
			a := s.Find("a").First()
			href, ok := a.Attr("href")
			if !ok || href == "" {
				return
			}
			links = append(links, Link{Title: strings.TrimSpace(a.Text()), Href: strings.TrimSpace(href)})
		})
		return links
	}
}
