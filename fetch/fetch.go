// Package fetch is the page fetcher collaborator of the resolution pipeline:
// it turns URLs into response bytes with bounded retries, a per-call timeout
// and an optional zstd compressed on-disk cache for fetched pages.
package fetch

import (
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/klauspost/compress/zstd"
	"github.com/sethgrid/pester"
	"github.com/sirupsen/logrus"

	"github.com/citekit/citekit"
	"github.com/citekit/citekit/config"
)

// DefaultCacheTTL bounds the age of cached pages.
const DefaultCacheTTL = 24 * time.Hour

// maxBodySize caps response bodies; provider responses and article pages are
// far below this.
const maxBodySize = 8 << 20

// Doer abstracts https://pkg.go.dev/net/http#Client.Do.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client wraps a retrying HTTP client with citation specific defaults.
type Client struct {
	Doer      Doer
	UserAgent string
	CacheTTL  time.Duration
	CacheDir  string // empty disables the page cache
}

// New returns a client backed by pester with exponential backoff, the
// configured retry count and a per-call timeout. The cache is disabled until
// WithCache is called.
func New(cfg *config.Config) *Client {
	c := pester.New()
	c.Backoff = pester.ExponentialBackoff
	c.MaxRetries = cfg.MaxRetries
	c.RetryOnHTTP429 = true
	c.Timeout = cfg.Timeout
	ua := cfg.UserAgent
	if ua == "" {
		ua = citekit.UserAgent
	}
	return &Client{
		Doer:      c,
		UserAgent: ua,
	}
}

// WithCache enables the on-disk page cache. An empty dir places the cache
// below the user cache dir, a zero ttl falls back to DefaultCacheTTL.
func (c *Client) WithCache(dir string, ttl time.Duration) (*Client, error) {
	if dir == "" {
		var err error
		dir, err = xdg.CacheFile(filepath.Join(citekit.AppName, "pages"))
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c.CacheDir = dir
	c.CacheTTL = ttl
	return c, nil
}

// Get fetches a URL and returns the response body. Responses with status
// codes >= 400 are errors. When the cache is enabled, a fresh cached copy is
// returned without a network roundtrip.
func (c *Client) Get(ctx context.Context, link string) ([]byte, error) {
	if b, ok := c.cached(link); ok {
		logrus.WithField("url", link).Debug("fetch: cache hit")
		return b, nil
	}
	req, err := http.NewRequestWithContext(ctx, "GET", link, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	resp, err := c.Doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch: HTTP %d for %s", resp.StatusCode, link)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	c.store(link, b)
	return b, nil
}

func (c *Client) cachePath(link string) string {
	return filepath.Join(c.CacheDir, fmt.Sprintf("%x.zst", sha1.Sum([]byte(link))))
}

func (c *Client) cached(link string) ([]byte, bool) {
	if c.CacheDir == "" {
		return nil, false
	}
	fn := c.cachePath(link)
	info, err := os.Stat(fn)
	if err != nil || time.Since(info.ModTime()) > c.CacheTTL {
		return nil, false
	}
	f, err := os.Open(fn)
	if err != nil {
		return nil, false
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, false
	}
	defer dec.Close()
	b, err := io.ReadAll(dec)
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Client) store(link string, b []byte) {
	if c.CacheDir == "" {
		return
	}
	f, err := os.Create(c.cachePath(link))
	if err != nil {
		logrus.WithError(err).Warn("fetch: cannot write cache file")
		return
	}
	defer f.Close()
	enc, err := zstd.NewWriter(f)
	if err != nil {
		return
	}
	if _, err := enc.Write(b); err != nil {
		logrus.WithError(err).Warn("fetch: cache write failed")
	}
	enc.Close()
}
