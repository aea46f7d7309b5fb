package httpclient

import (
	"time"

	"webprobe/lib/platform"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Config struct {
	// Timeout is in seconds, zero means 30.
	Timeout          int               `json:"timeout"`
	UserAgent        string            `json:"user_agent"`
	MaxRedirects     int               `json:"max_redirects"`
	CloudflareBypass bool              `json:"cloudflare_bypass"`
	DumpDir          string            `json:"dump_dir"`
	Headers          map[string]string `json:"headers"`

	// Platforms receives every response observed by the client.
	Platforms *platform.Registry `json:"-"`
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

func (c Config) userAgent() string {
	if c.UserAgent == "" {
		return defaultUserAgent
	}
	return c.UserAgent
}

func (c Config) maxRedirects() int {
	if c.MaxRedirects <= 0 {
		return 10
	}
	return c.MaxRedirects
}
