// Package app provides the core application initialization and lifecycle management.
package app

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fieldstats/matchlog/internal/cache"
	"github.com/fieldstats/matchlog/internal/config"
	"github.com/fieldstats/matchlog/internal/fetch"
	"github.com/fieldstats/matchlog/internal/ratelimit"
	"github.com/fieldstats/matchlog/internal/resolve"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	Cache       cache.Cache
	RateLimiter ratelimit.Limiter
	HTTPClient  *http.Client
	Fetcher     *fetch.Fetcher
	Resolver    *resolve.Resolver
	startTime   time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the in-memory page cache
//   - Creates the rate limiter for per-host request throttling
//   - Initializes the HTTP client with timeouts and optional proxy
//   - Creates the fetcher (with headless browser fallback when enabled)
//   - Creates the team resolver
//
// If any step fails, an error is returned and no resources are allocated.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	pageCache := cache.NewPageCache(cfg.CacheMaxSizeBytes)
	logger.Debug().
		Int64("max_size_bytes", cfg.CacheMaxSizeBytes).
		Msg("Page cache initialized")

	limiter := ratelimit.NewHostLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
		logger.Debug().Str("proxy", cfg.Proxy).Msg("Proxy configured")
	}
	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport,
	}

	var browser *fetch.BrowserFetcher
	if cfg.BrowserFallback {
		browser = fetch.NewBrowserFetcher(cfg.UserAgent, cfg.Proxy, cfg.ChromePath, cfg.HTTPTimeout)
		logger.Debug().Msg("Browser fallback enabled")
	}

	fetcher := fetch.New(fetch.Options{
		Client:    httpClient,
		Limiter:   limiter,
		Cache:     pageCache,
		CacheTTL:  cfg.CacheTTL,
		UserAgent: cfg.UserAgent,
		Browser:   browser,
	})

	resolver := resolve.NewWithBaseURL(fetcher, cfg.BaseURL)

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		Cache:       pageCache,
		RateLimiter: limiter,
		HTTPClient:  httpClient,
		Fetcher:     fetcher,
		Resolver:    resolver,
		startTime:   time.Now(),
	}

	logger.Debug().Msg("Application initialized")
	return app, nil
}

// Close gracefully shuts down the application and all its resources.
func (a *Application) Close() error {
	if a.Cache != nil {
		a.Cache.Close()
	}
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
