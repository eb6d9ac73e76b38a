// Package fetch retrieves pages from the stats site as parsed documents.
//
// The fast path is a plain HTTP GET with browser-like headers. When the site
// answers with a block (403/429) or a flaky 5xx, the fetcher can fall back
// to a headless browser, which the site does not reject.
package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/fieldstats/matchlog/internal/cache"
	"github.com/fieldstats/matchlog/internal/ratelimit"
	"github.com/fieldstats/matchlog/internal/retry"
	"github.com/fieldstats/matchlog/pkg/models"
)

// Fetcher retrieves and parses pages, with rate limiting, retries, and an
// optional headless-browser fallback for blocked requests.
type Fetcher struct {
	client    *http.Client
	limiter   ratelimit.Limiter
	cache     cache.Cache
	cacheTTL  time.Duration
	retry     retry.Config
	userAgent string
	browser   *BrowserFetcher // nil disables the fallback
}

// Options configures a Fetcher. Client and Limiter are required; the rest
// have sensible zero-value behavior.
type Options struct {
	Client    *http.Client
	Limiter   ratelimit.Limiter
	Cache     cache.Cache
	CacheTTL  time.Duration
	Retry     retry.Config
	UserAgent string
	Browser   *BrowserFetcher
}

// New creates a Fetcher.
func New(opts Options) *Fetcher {
	r := opts.Retry
	if r.MaxAttempts <= 0 {
		r = retry.DefaultConfig()
	}
	return &Fetcher{
		client:    opts.Client,
		limiter:   opts.Limiter,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		retry:     r,
		userAgent: opts.UserAgent,
		browser:   opts.Browser,
	}
}

// Fetch retrieves the URL and returns the page snapshot together with its
// parsed document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*models.Page, *goquery.Document, error) {
	if f.cache != nil {
		if page, ok := f.cache.Get(url); ok {
			doc, err := parsePage(page)
			if err == nil {
				return page, doc, nil
			}
			log.Warn().Err(err).Str("url", url).Msg("Discarding unparsable cached page")
		}
	}

	var page *models.Page
	err := retry.Do(ctx, f.retry, func() error {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx, url); err != nil {
				return err
			}
		}

		p, err := f.fetchStatic(ctx, url)
		if err == nil {
			page = p
			return nil
		}

		if f.browser != nil && isBlocked(err) {
			log.Info().Str("url", url).Msg("Request blocked, retrying with headless browser")
			p, berr := f.browser.Fetch(ctx, url)
			if berr == nil {
				page = p
				return nil
			}
			log.Warn().Err(berr).Str("url", url).Msg("Headless browser fetch failed")
		}

		return err
	})
	if err != nil {
		return nil, nil, err
	}

	doc, err := parsePage(page)
	if err != nil {
		return nil, nil, &FetchError{Kind: KindNetwork, URL: url, Err: err}
	}

	if f.cache != nil {
		f.cache.Set(url, page, f.cacheTTL)
	}

	return page, doc, nil
}

func (f *Fetcher) fetchStatic(ctx context.Context, url string) (*models.Page, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: url, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://www.google.com/")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Kind: KindHTTP, URL: url, Status: resp.StatusCode}
	}

	page := &models.Page{
		URL:          url,
		StatusCode:   resp.StatusCode,
		HTML:         string(body),
		FetchedAt:    time.Now(),
		ResponseTime: time.Since(start).Milliseconds(),
	}

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int64("response_time_ms", page.ResponseTime).
		Msg("Fetch completed")

	return page, nil
}

// isBlocked reports whether the error is the kind of rejection the headless
// browser can get past.
func isBlocked(err error) bool {
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != KindHTTP {
		return false
	}
	switch fe.Status {
	case http.StatusForbidden, http.StatusTooManyRequests, http.StatusInternalServerError:
		return true
	}
	return false
}

func parsePage(page *models.Page) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
}
