// Package http builds the HTTP client used for all backend calls.
package http

import (
	nethttp "net/http"
	"time"

	"golang.org/x/net/http2"
)

// NewClient creates the HTTP client shared by all gateway calls.
//
// The backend authenticates with a session cookie, so every request must go
// through the same cookie jar. Per-operation timeouts are applied via
// context by callers; the client itself carries no overall timeout.
func NewClient(jar nethttp.CookieJar) *nethttp.Client {
	tr := &nethttp.Transport{
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 8,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	_ = http2.ConfigureTransport(tr)

	return &nethttp.Client{
		Transport: tr,
		Jar:       jar,
	}
}
