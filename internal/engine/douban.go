package engine

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/fetchclient"
)

// Douban implements the Douban movie-search engine. Its SERP embeds result
// data as a window.__DATA__ JSON blob; when that blob parses, its "items"
// drive the candidate list, falling back to the item-root/title/a tag
// structure otherwise, per douban_service.py's _get_links_json_data /
// _extract_json_links / _extract_tag_links.
type Douban struct {
	base
}

func NewDouban(cfg config.Config, client fetchclient.Client) *Douban {
	e := &Douban{}
	e.base = newBase("Douban", cfg, client,
		func(query string) string { return cfg.DoubanSearchURL + "?search_text=" + url.QueryEscape(query) },
		parseDoubanSERP)
	// movie.douban.com content only ever surfaces under the douban.com
	// family, so this list replaces the shared AllowedDomain list for
	// Douban: base.filterAllowedDomain checks only these two entries.
	e.allowedDomain = []string{"movie.douban.com", "douban.com"}
	return e
}

var doubanDataRe = regexp.MustCompile(`(?s)<script[^>]*>.*?window\.__DATA__\s*=\s*(\{.*?\});.*?</script>`)
var trailingCommaRe = regexp.MustCompile(`,\s*([\]}])`)

type doubanDataBlob struct {
	Items []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
		URLs  []struct {
			Text string `json:"text"`
			URL  string `json:"url"`
		} `json:"urls"`
	} `json:"items"`
}

func parseDoubanSERP(body string) []Link {
	if links := parseDoubanJSONBlob(body); links != nil {
		return links
	}
	return parseDoubanTagLinks(body)
}

func parseDoubanJSONBlob(body string) []Link {
	m := doubanDataRe.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	cleaned := trailingCommaRe.ReplaceAllString(m[1], "$1")

	var data doubanDataBlob
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil
	}

	var links []Link
	for _, item := range data.Items {
		if item.Title != "" && item.URL != "" {
			links = append(links, Link{Title: item.Title, Href: item.URL})
			continue
		}
		for _, u := range item.URLs {
			if u.Text != "" && u.URL != "" {
				links = append(links, Link{Title: u.Text, Href: u.URL})
			}
		}
	}
	return links
}

func parseDoubanTagLinks(body string) []Link {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}
	var links []Link
	doc.Find("div.item-root").Each(func(_ int, s *goquery.Selection) {
		a := s.Find("div.title a").First()
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		links = append(links, Link{Title: strings.TrimSpace(a.Text()), Href: href})
	})
	return links
}
