package config

import (
	"time"

	"github.com/citekit/citekit"
	"github.com/citekit/citekit/render"
)

// Config carries settings for all citekit tools.
type Config struct {
	// UserAgent is sent on every outgoing HTTP request. Some providers
	// reject the default Go agent.
	UserAgent string
	// Locale selects the citation language, "en" or "fa".
	Locale render.Locale
	// DateFormat is the default access-date rendering, one of
	// "%Y-%m-%d", "%B %d, %Y", "%d %B %Y".
	DateFormat string
	Timeout    time.Duration
	MaxRetries int
	// CacheDir holds compressed copies of fetched pages. Empty disables
	// the page cache.
	CacheDir string
	CacheTTL time.Duration
	// NcbiEmail and NcbiTool are passed to the NCBI efetch endpoint as a
	// courtesy, per their usage policy.
	NcbiEmail string
	NcbiTool  string
	// Netloc maps extra hostnames to resolver names, merged over the
	// built-in table.
	Netloc map[string]string
}

// Default returns a config with working values for interactive use.
func Default() *Config {
	return &Config{
		UserAgent:  citekit.UserAgent,
		Locale:     render.English,
		DateFormat: "%Y-%m-%d",
		Timeout:    15 * time.Second,
		MaxRetries: 3,
		CacheTTL:   24 * time.Hour,
		NcbiTool:   "citekit",
	}
}
