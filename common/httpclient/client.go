// Package httpclient builds the outbound HTTP clients used for the search
// provider and grant PDF downloads.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

const (
	DefaultTimeout   = 20 * time.Second
	DefaultUserAgent = "grantly/1.0"
)

type Config struct {
	// Timeout bounds the whole exchange, body included. A shorter context
	// deadline still wins.
	Timeout time.Duration
	// UserAgent is sent on requests that do not set their own.
	UserAgent string
	// MaxIdleConnsPerHost sizes the keep-alive pool; each client talks to a
	// handful of hosts.
	MaxIdleConnsPerHost int
}

// New returns a client with bounded dial, TLS and header waits. Zero fields
// take the package defaults.
func New(cfg Config) *http.Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxIdleConnsPerHost <= 0 {
		cfg.MaxIdleConnsPerHost = 8
	}

	dialer := &net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          4 * cfg.MaxIdleConnsPerHost,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: min(cfg.Timeout, 15*time.Second),
	}

	return &http.Client{
		Transport: &userAgent{next: tr, value: cfg.UserAgent},
		Timeout:   cfg.Timeout,
	}
}

type userAgent struct {
	next  http.RoundTripper
	value string
}

func (t *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.value)
	return t.next.RoundTrip(req)
}
