package engine

import (
	"net/url"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/fetchclient"
)

// Bing implements the Bing web-search engine. No bing_service.py equivalent
// is present in the reference source, so its SERP shape is grounded on
// baidu_service.py's shared anchor-in-container pattern: Bing result titles
// sit in <li class="b_algo"><h2><a>.
type Bing struct {
	base
}

func NewBing(cfg config.Config, client fetchclient.Client) *Bing {
	e := &Bing{}
	e.base = newBase("Bing", cfg, client,
		func(query string) string { return cfg.BingURL + "?q=" + url.QueryEscape(query) },
		parseByAnchorContainer("li.b_algo h2"))
	return e
}
