package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel          = "info"
	DefaultJSONLog           = false
	DefaultUserAgent         = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultRateLimitRPS      = 0.2 // one request every five seconds
	DefaultRateLimitBurst    = 1
	DefaultCacheTTL          = 5 * time.Minute
	DefaultCacheMaxSizeBytes = 16 * 1024 * 1024
	DefaultMaxMatches        = 7
	DefaultOutputPath        = "output.csv"
	DefaultBaseURL           = "https://fbref.com"
	DefaultBrowserFallback   = true
)
