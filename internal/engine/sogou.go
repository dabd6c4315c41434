package engine

import (
	"net/url"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/fetchclient"
)

// Sogou implements the Sogou web-search engine. Like Bing, no
// sogou_service.py is present in the reference source; its SERP shape is
// grounded on baidu_service.py's shared anchor-in-container pattern, with
// Sogou's own result container class (<h3 class="vr-title">).
type Sogou struct {
	base
}

func NewSogou(cfg config.Config, client fetchclient.Client) *Sogou {
	e := &Sogou{}
	e.base = newBase("Sogou", cfg, client,
		func(query string) string { return cfg.SogouURL + "?query=" + url.QueryEscape(query) },
		parseByAnchorContainer("h3.vr-title"))
	return e
}
