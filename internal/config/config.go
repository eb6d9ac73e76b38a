package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP/Scraping
	HTTPTimeout time.Duration
	UserAgent   string
	Proxy       string
	BaseURL     string

	// Rate Limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Page cache
	CacheTTL          time.Duration
	CacheMaxSizeBytes int64

	// Extraction
	MaxMatches int

	// Headless fallback for blocked requests
	BrowserFallback bool
	ChromePath      string
}

// fileConfig mirrors the optional YAML config file. Absent keys leave the
// corresponding Config field untouched.
type fileConfig struct {
	LogLevel        *string  `yaml:"log_level"`
	UserAgent       *string  `yaml:"user_agent"`
	Proxy           *string  `yaml:"proxy"`
	Timeout         *string  `yaml:"timeout"`
	BaseURL         *string  `yaml:"base_url"`
	RateLimitRPS    *float64 `yaml:"rate_limit_rps"`
	RateLimitBurst  *int     `yaml:"rate_limit_burst"`
	MaxMatches      *int     `yaml:"max_matches"`
	BrowserFallback *bool    `yaml:"browser_fallback"`
	ChromePath      *string  `yaml:"chrome_path"`
}

// Load builds a Config by combining defaults, an optional YAML config file,
// environment variables, and CLI flags, in increasing order of precedence.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:          DefaultLogLevel,
		JSONLog:           DefaultJSONLog,
		HTTPTimeout:       DefaultHTTPTimeout,
		UserAgent:         DefaultUserAgent,
		BaseURL:           DefaultBaseURL,
		RateLimitRPS:      DefaultRateLimitRPS,
		RateLimitBurst:    DefaultRateLimitBurst,
		CacheTTL:          DefaultCacheTTL,
		CacheMaxSizeBytes: DefaultCacheMaxSizeBytes,
		MaxMatches:        DefaultMaxMatches,
		BrowserFallback:   DefaultBrowserFallback,
	}

	// Config file: --config flag wins, then MATCHLOG_CONFIG.
	path := flagString(cmd, "config")
	if path == "" {
		path = os.Getenv("MATCHLOG_CONFIG")
	}
	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	// Environment overrides.
	if v := os.Getenv("MATCHLOG_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("MATCHLOG_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("MATCHLOG_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}

	// CLI flags win over everything, but only when the user actually set
	// them: cobra reports the registered default for untouched flags, which
	// must not clobber the file and env layers.
	if cmd != nil {
		if flagChanged(cmd, "user-agent") {
			cfg.UserAgent = flagString(cmd, "user-agent")
		}
		if flagChanged(cmd, "proxy") {
			cfg.Proxy = flagString(cmd, "proxy")
		}
		if flagChanged(cmd, "timeout") {
			if d, err := time.ParseDuration(flagString(cmd, "timeout")); err == nil {
				cfg.HTTPTimeout = d
			}
		}
		if flagBool(cmd, "json") {
			cfg.JSONLog = true
		}
		if flagBool(cmd, "verbose") {
			cfg.LogLevel = "debug"
		}
		if flagBool(cmd, "quiet") {
			cfg.LogLevel = "error"
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.UserAgent != nil {
		cfg.UserAgent = *fc.UserAgent
	}
	if fc.Proxy != nil {
		cfg.Proxy = *fc.Proxy
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in config file: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if fc.BaseURL != nil {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.RateLimitRPS != nil {
		cfg.RateLimitRPS = *fc.RateLimitRPS
	}
	if fc.RateLimitBurst != nil {
		cfg.RateLimitBurst = *fc.RateLimitBurst
	}
	if fc.MaxMatches != nil {
		cfg.MaxMatches = *fc.MaxMatches
	}
	if fc.BrowserFallback != nil {
		cfg.BrowserFallback = *fc.BrowserFallback
	}
	if fc.ChromePath != nil {
		cfg.ChromePath = *fc.ChromePath
	}

	return nil
}

// Flags are registered as persistent but looked up before cobra merges the
// flag sets, so both sets are consulted.
func flagString(cmd *cobra.Command, name string) string {
	if cmd == nil {
		return ""
	}
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	if f := cmd.PersistentFlags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func flagBool(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String() == "true"
	}
	if f := cmd.PersistentFlags().Lookup(name); f != nil {
		return f.Value.String() == "true"
	}
	return false
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Changed
	}
	if f := cmd.PersistentFlags().Lookup(name); f != nil {
		return f.Changed
	}
	return false
}
