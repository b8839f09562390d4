// Package renderer provides the page-rendering capability used to
// fetch a status page with full script execution. The source site
// populates a global data object asynchronously from its own page
// scripts, so a plain GET of the document is not enough for the
// embedded-data extraction path.
//
// The capability is kept behind the PageRenderer interface so that
// tests (and callers that only need the heuristic path) can swap in
// a static fetch instead of spawning a browser.
package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/weibosaver/Weibo-Saver-Logic/constants"
	wserrors "github.com/weibosaver/Weibo-Saver-Logic/errors"
)

// RenderedPage is the outcome of rendering a single status page.
type RenderedPage struct {
	// Url is the URL the page was rendered from.
	Url string

	// Html is the serialized DOM after script execution.
	Html string

	// RenderData is the JSON serialization of the global
	// $render_data object, or nil when the page did not expose one.
	RenderData []byte
}

type PageRenderer interface {
	RenderPage(ctx context.Context, pageUrl string) (*RenderedPage, error)
}

// ChromeRenderer renders pages in a sandboxed headless Chrome
// instance via the DevTools protocol.
type ChromeRenderer struct {
	UserAgent string

	// SettleDelay is how long to wait after the document is ready
	// for the page scripts to populate the render data object.
	SettleDelay time.Duration
}

func NewChromeRenderer(userAgent string) *ChromeRenderer {
	return &ChromeRenderer{
		UserAgent:   userAgent,
		SettleDelay: 2 * time.Second,
	}
}

func (r *ChromeRenderer) getAllocOptions() []chromedp.ExecAllocatorOption {
	return append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(r.UserAgent),
		chromedp.Headless,
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
}

// RenderPage navigates to the given URL, waits for the page scripts
// to run and returns the serialized DOM together with the injected
// $render_data object if the page exposed one.
func (r *ChromeRenderer) RenderPage(ctx context.Context, pageUrl string) (*RenderedPage, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.getAllocOptions()...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, constants.PAGE_TIMEOUT*time.Second)
	defer cancelTimeout()

	settleDelay := r.SettleDelay
	if settleDelay <= 0 {
		settleDelay = 2 * time.Second
	}

	var pageHtml, renderDataJson string
	actions := []chromedp.Action{
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
		}),
		chromedp.Navigate(pageUrl),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		chromedp.Evaluate(
			`window.$render_data ? JSON.stringify(window.$render_data) : ""`,
			&renderDataJson,
		),
		chromedp.OuterHTML("html", &pageHtml, chromedp.ByQuery),
	}
	if err := chromedp.Run(taskCtx, actions...); err != nil {
		return nil, fmt.Errorf(
			"error %d: %w, more info => %v\nurl: %s",
			constants.RENDER_ERROR,
			wserrors.ErrPageFetch,
			err,
			pageUrl,
		)
	}

	renderedPage := &RenderedPage{
		Url:  pageUrl,
		Html: pageHtml,
	}
	if renderDataJson != "" {
		renderedPage.RenderData = []byte(renderDataJson)
	}
	return renderedPage, nil
}
