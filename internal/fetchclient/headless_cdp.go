package fetchclient

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/5u5urrus/retriever/internal/headers"
)

// HeadlessCDP renders pages the same way HeadlessChromedp does but drives
// the raw Page/Network/DOM CDP domains directly (network.Enable,
// page.Navigate, dom.GetDocument, dom.GetOuterHTML) inside one ActionFunc,
// using chromedp only for the WaitVisible("body") wait — the second of the
// two headless backends the specification names as distinct kinds sharing
// one browser-automation contract.
type HeadlessCDP struct {
	perPage time.Duration
}

func NewHeadlessCDP(perPage time.Duration) *HeadlessCDP {
	if perPage <= 0 {
		perPage = 8 * time.Second
	}
	return &HeadlessCDP{perPage: perPage}
}

func (c *HeadlessCDP) Name() string { return "HeadlessCDP" }

func (c *HeadlessCDP) Fetch(ctx context.Context, rawURL string, hdrs headers.HttpHeaders) ([]byte, int, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	pageCtx, cancelPage := context.WithTimeout(browserCtx, c.perPage)
	defer cancelPage()

	status := 0
	var html string

	err := chromedp.Run(pageCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		if err := network.Enable().Do(ctx); err != nil {
			return err
		}

		chromedp.ListenTarget(ctx, func(ev interface{}) {
			if e, ok := ev.(*network.EventResponseReceived); ok && e.Response.URL == rawURL {
				status = int(e.Response.Status)
			}
		})

		_, _, _, err := page.Navigate(rawURL).Do(ctx)
		if err != nil {
			return err
		}
		if err := chromedp.WaitVisible("body", chromedp.ByQuery).Do(ctx); err != nil {
			return err
		}
		time.Sleep(1500 * time.Millisecond)

		var root *cdp.Node
		root, err = dom.GetDocument().Do(ctx)
		if err != nil {
			return err
		}
		html, err = dom.GetOuterHTML().WithNodeID(root.NodeID).Do(ctx)
		return err
	}))
	if err != nil {
		return nil, status, err
	}
	if status == 0 {
		status = 200
	}
	return []byte(html), status, nil
}
