// Package engine implements the seven search-engine services named in the
// retrieval specification, each sharing one search pipeline through base:
// fetch the SERP, parse result links, filter by allowed domain, fetch a
// bounded number of secondary pages through a worker pool, and optionally
// reduce each page to extracted text. Grounded on base_search.py's
// BaseSearch plus each concrete *_service.py's search_web method.
package engine

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/url"
	"sync"
	"time"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/envelope"
	"github.com/5u5urrus/retriever/internal/extract"
	"github.com/5u5urrus/retriever/internal/fetchclient"
	"github.com/5u5urrus/retriever/internal/headers"
	"github.com/5u5urrus/retriever/internal/logging"
)

// Mode selects what a search call returns: "link" for raw SERP links,
// "html" for fetched secondary pages, "text" for extracted page text.
type Mode string

const (
	ModeLink Mode = "link"
	ModeHTML Mode = "html"
	ModeText Mode = "text"
)

// Link is one parsed search-result candidate.
type Link struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// ContentResult is one secondary-fetch outcome, matching the reference
// system's {"url", "content"/"error"} dict shape.
type ContentResult struct {
	URL     string `json:"url"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Service is the contract every concrete engine implements.
type Service interface {
	Search(ctx context.Context, query string, mode Mode, linksNum int, hdrs headers.HttpHeaders) envelope.Envelope
}

// searchURLFunc builds the SERP request URL for a query.
type searchURLFunc func(query string) string

// parseSERPFunc parses a fetched SERP body into ranked candidate links.
type parseSERPFunc func(body string) []Link

// base holds the pipeline shared by every engine; concrete engines embed
// it and supply their SERP URL builder and parser via closures, the Go
// analogue of BaseSearch's abstract search() plus per-engine overrides.
type base struct {
	name          string
	cfg           config.Config
	client        fetchclient.Client
	buildURL      searchURLFunc
	parseSERP     parseSERPFunc
	allowedDomain []string
}

func newBase(name string, cfg config.Config, client fetchclient.Client, buildURL searchURLFunc, parseSERP parseSERPFunc) base {
	return base{
		name:          name,
		cfg:           cfg,
		client:        client,
		buildURL:      buildURL,
		parseSERP:     parseSERP,
		allowedDomain: cfg.AllowedDomain,
	}
}

// Search runs the shared pipeline: fetch the SERP, parse and filter
// candidates, and (for html/text modes) fetch up to linksNum secondary
// pages through a bounded worker pool.
func (b base) Search(ctx context.Context, query string, mode Mode, linksNum int, hdrs headers.HttpHeaders) envelope.Envelope {
	searchURL := b.buildURL(query)

	body, err := fetchclient.RunWithRetry(ctx, b.client, searchURL, fetchclient.EnhancedHeaders{Upstream: hdrs}, b.cfg.DefaultRetries)
	if err != nil {
		return envelope.Error(upstreamFailureCode(err), "search failed", err.Error())
	}

	candidates := b.parseSERP(string(body))
	if len(candidates) > b.cfg.MaxResults {
		candidates = candidates[:b.cfg.MaxResults]
	}
	filtered := b.filterAllowedDomain(candidates)

	if mode == ModeLink {
		return envelope.Success("filtered search result links", filtered)
	}

	requestURLs := b.extractRequestURLs(filtered, linksNum)
	contents := b.fetchSecondary(ctx, requestURLs, hdrs)

	if mode == ModeHTML {
		return envelope.Success("fetched secondary page source", contents)
	}

	extracted := make([]ContentResult, 0, len(contents))
	for _, c := range contents {
		if c.Content == "" {
			continue
		}
		text, err := extract.Text(c.Content)
		if err != nil || text == "" {
			continue
		}
		c.Content = text
		extracted = append(extracted, c)
	}
	return envelope.Success("fetched and extracted secondary page text", extracted)
}

func (b base) filterAllowedDomain(links []Link) []Link {
	out := make([]Link, 0, len(links))
	for _, l := range links {
		parsed, err := url.Parse(l.Href)
		if err != nil {
			continue
		}
		for _, domain := range b.allowedDomain {
			if containsDomain(parsed.Host, domain) {
				out = append(out, l)
				break
			}
		}
	}
	return out
}

func containsDomain(host, domain string) bool {
	if host == domain {
		return true
	}
	if len(host) > len(domain) && host[len(host)-len(domain)-1:] == "."+domain {
		return true
	}
	return false
}

// extractRequestURLs picks at most linksNum urls, preferring one per
// distinct domain first and padding with the remainder if still short,
// matching _extract_request_urls.
func (b base) extractRequestURLs(links []Link, linksNum int) []string {
	seenDomain := map[string]bool{}
	var result []string

	for _, l := range links {
		if len(result) >= linksNum {
			break
		}
		parsed, err := url.Parse(l.Href)
		if err != nil {
			continue
		}
		if !seenDomain[parsed.Host] {
			result = append(result, l.Href)
			seenDomain[parsed.Host] = true
		}
	}

	if len(result) < linksNum {
		already := map[string]bool{}
		for _, u := range result {
			already[u] = true
		}
		for _, l := range links {
			if len(result) >= linksNum {
				break
			}
			if !already[l.Href] {
				result = append(result, l.Href)
				already[l.Href] = true
			}
		}
	}
	return result
}

// fetchSecondary fetches urls through a bounded pool of 5 workers, each
// staggered by a uniform(0.3s, 1.0s) jitter sleep before its request, per
// _fetch_contents_concurrently / _fetch_single_content.
func (b base) fetchSecondary(ctx context.Context, urls []string, hdrs headers.HttpHeaders) []ContentResult {
	const poolSize = 5

	jobs := make(chan string)
	resultsCh := make(chan ContentResult, len(urls))
	var wg sync.WaitGroup

	for i := 0; i < poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				sleepJitter(ctx)
				body, err := fetchclient.RunWithRetry(ctx, b.client, u, fetchclient.EnhancedHeaders{Upstream: hdrs}, b.cfg.DefaultRetries)
				if err != nil {
					logging.L.WithField("url", u).Debug("secondary fetch failed: " + err.Error())
					resultsCh <- ContentResult{URL: u, Error: err.Error()}
					continue
				}
				resultsCh <- ContentResult{URL: u, Content: string(body)}
			}
		}()
	}

	go func() {
		for _, u := range urls {
			jobs <- u
		}
		close(jobs)
	}()

	wg.Wait()
	close(resultsCh)

	out := make([]ContentResult, 0, len(urls))
	for r := range resultsCh {
		if r.Content != "" {
			out = append(out, r)
		}
	}
	return out
}

// upstreamFailureCode maps a RunWithRetry error to the response code the
// specification's taxonomy assigns it: backend retry-budget exhaustion is
// 502 (UpstreamFetchFailed), anything else is a genuine search-layer 500.
func upstreamFailureCode(err error) int {
	var upstreamErr *envelope.UpstreamFetchFailedError
	if errors.As(err, &upstreamErr) {
		return 502
	}
	return 500
}

func sleepJitter(ctx context.Context) {
	d := 300*time.Millisecond + time.Duration(rand.Float64()*700)*time.Millisecond
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
