package httpclient

import (
	"net/http"
	"time"
)

var sharedTransport = &http.Transport{
	MaxIdleConns:        20,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     120 * time.Second,
}

// NewPooledClient returns a client backed by the process-wide transport so
// connections to upstream services are reused across requests.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: sharedTransport,
		Timeout:   timeout,
	}
}
