package fetchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"

	"github.com/5u5urrus/retriever/internal/headers"
)

// CrawlerFramework fetches one URL in a child process running a one-shot
// colly collector, the Go analogue of the reference system's ScrapyClient
// (a separate multiprocessing.Process feeding a Queue back to the parent,
// used so a hung or crashing scrape engine can't take the whole service
// down with it). The child is this same binary invoked with the hidden
// "spider-worker" subcommand; WorkerResult carries the result back over
// stdout as JSON instead of Python's Queue.
type CrawlerFramework struct {
	timeout time.Duration
}

func NewCrawlerFramework(timeout time.Duration) *CrawlerFramework {
	return &CrawlerFramework{timeout: timeout}
}

func (c *CrawlerFramework) Name() string { return "CrawlerFramework" }

// WorkerResult is the JSON contract between the parent and the
// spider-worker child process.
type WorkerResult struct {
	Status      int    `json:"status"`
	Body        string `json:"body"`
	ErrorDetail string `json:"error_detail,omitempty"`
}

func (c *CrawlerFramework) Fetch(ctx context.Context, rawURL string, hdrs headers.HttpHeaders) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	headerJSON, err := json.Marshal(hdrs)
	if err != nil {
		return nil, 0, err
	}

	cmd := exec.CommandContext(ctx, os.Args[0], "spider-worker", "--url", rawURL, "--headers", string(headerJSON),
		"--timeout", strconv.Itoa(int(c.timeout.Seconds())))
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, 0, err
	}

	var result WorkerResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		return nil, 0, err
	}
	if result.ErrorDetail != "" && result.Body == "" {
		return nil, result.Status, &CrawlerFrameworkError{Detail: result.ErrorDetail}
	}
	return []byte(result.Body), result.Status, nil
}

// CrawlerFrameworkError wraps a spider-worker child's reported failure.
type CrawlerFrameworkError struct {
	Detail string
}

func (e *CrawlerFrameworkError) Error() string { return e.Detail }

// RunSpiderWorker performs the one-shot colly fetch and is invoked by the
// hidden "spider-worker" child process. It mirrors the reference system's
// SimpleSpider: anti-bot status
// codes and a literal "antibot-challenge" marker in the body both count as
// a blocked response rather than a successful fetch.
func RunSpiderWorker(rawURL string, hdrs headers.HttpHeaders, timeout time.Duration) WorkerResult {
	c := colly.NewCollector()
	extensions.RandomUserAgent(c)
	c.SetRequestTimeout(timeout)

	result := WorkerResult{}
	c.OnRequest(func(r *colly.Request) {
		for k, v := range hdrs {
			r.Headers.Set(k, v)
		}
	})
	c.OnResponse(func(r *colly.Response) {
		result.Status = r.StatusCode
		body := string(r.Body)
		if IsAntiBotStatus(r.StatusCode) {
			result.ErrorDetail = "anti-bot status code encountered, needs manual unblock"
			return
		}
		if containsAntiBotMarker(body) {
			result.ErrorDetail = "challenge page detected, needs manual unblock"
			return
		}
		result.Body = body
	})
	c.OnError(func(r *colly.Response, err error) {
		result.Status = r.StatusCode
		result.ErrorDetail = "request failed: " + err.Error()
	})

	if err := c.Visit(rawURL); err != nil && result.ErrorDetail == "" {
		result.ErrorDetail = err.Error()
	}
	return result
}

func containsAntiBotMarker(body string) bool {
	return strings.Contains(body, "antibot-challenge")
}
