package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/fieldstats/matchlog/pkg/models"
)

// BrowserFetcher retrieves pages through headless Chrome. The stats site
// serves bot-detection blocks to plain HTTP clients but renders normally in
// a real browser engine.
type BrowserFetcher struct {
	userAgent  string
	proxy      string
	chromePath string
	timeout    time.Duration
}

// NewBrowserFetcher creates a fallback fetcher. chromePath may be empty, in
// which case Chrome is located automatically.
func NewBrowserFetcher(userAgent, proxy, chromePath string, timeout time.Duration) *BrowserFetcher {
	if chromePath == "" {
		chromePath = FindChrome()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &BrowserFetcher{
		userAgent:  userAgent,
		proxy:      proxy,
		chromePath: chromePath,
		timeout:    timeout,
	}
}

// Fetch navigates to the URL in a fresh headless browser context and returns
// the rendered page.
func (b *BrowserFetcher) Fetch(ctx context.Context, url string) (*models.Page, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(b.userAgent),
	}
	if b.chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(b.chromePath)}, allocOpts...)
	}
	if b.proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(b.proxy))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var statusCode int64
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Response.URL == url {
			statusCode = resp.Response.Status
		}
	})

	var html string
	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.ActionFunc(func(context.Context) error {
			// Let the initial scripts settle before snapshotting.
			time.Sleep(500 * time.Millisecond)
			return nil
		}),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: url, Err: fmt.Errorf("headless fetch: %w", err)}
	}

	if statusCode >= 400 {
		return nil, &FetchError{Kind: KindHTTP, URL: url, Status: int(statusCode)}
	}
	if statusCode == 0 {
		// Navigation completed without an observed response event; trust
		// the rendered document.
		statusCode = 200
	}

	page := &models.Page{
		URL:          url,
		StatusCode:   int(statusCode),
		HTML:         html,
		FetchedAt:    time.Now(),
		ResponseTime: time.Since(start).Milliseconds(),
	}

	log.Debug().
		Str("url", url).
		Int("status", page.StatusCode).
		Int64("response_time_ms", page.ResponseTime).
		Msg("Headless fetch completed")

	return page, nil
}
