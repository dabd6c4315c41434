package fetchclient

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/5u5urrus/retriever/internal/headers"
)

// HeadlessChromedp renders pages with chromedp's high-level action list,
// adapted from the teacher's StartRenderManager (render_headless.go):
// same Fetch-domain interception to drop heavy asset types and the same
// Navigate+WaitReady+Sleep "network idle" heuristic, but driven per-URL
// for a single synchronous fetch instead of a crawl-wide render queue.
type HeadlessChromedp struct {
	perPage time.Duration
}

func NewHeadlessChromedp(perPage time.Duration) *HeadlessChromedp {
	if perPage <= 0 {
		perPage = 8 * time.Second
	}
	return &HeadlessChromedp{perPage: perPage}
}

func (c *HeadlessChromedp) Name() string { return "HeadlessChromedp" }

func (c *HeadlessChromedp) Fetch(ctx context.Context, rawURL string, hdrs headers.HttpHeaders) ([]byte, int, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	pageCtx, cancelPage := context.WithTimeout(browserCtx, c.perPage)
	defer cancelPage()

	lastStatus := 0
	var html string

	err := chromedp.Run(pageCtx,
		network.Enable(),
		fetch.Enable().WithPatterns([]*fetch.RequestPattern{{URLPattern: "*"}}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			chromedp.ListenTarget(ctx, func(ev interface{}) {
				switch e := ev.(type) {
				case *fetch.EventRequestPaused:
					switch e.ResourceType {
					case network.ResourceTypeImage, network.ResourceTypeStylesheet,
						network.ResourceTypeMedia, network.ResourceTypeFont:
						go fetch.FailRequest(e.RequestID, network.ErrorReasonBlockedByClient).Do(ctx)
					default:
						go fetch.ContinueRequest(e.RequestID).Do(ctx)
					}
				case *network.EventResponseReceived:
					if e.Response.URL == rawURL {
						lastStatus = int(e.Response.Status)
					}
				}
			})
			return nil
		}),
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, lastStatus, err
	}
	if lastStatus == 0 {
		lastStatus = 200
	}
	return []byte(html), lastStatus, nil
}
