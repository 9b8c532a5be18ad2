// Package httputil provides a security-hardened HTTP client and input
// sanitization utilities.
package httputil

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodySize bounds how much of a response body is read into memory.
const maxBodySize = 10 * 1024 * 1024 // 10MB

// Client performs GET requests with caller-supplied headers and a bounded
// per-request timeout. It satisfies the resolver's Fetcher interface.
type Client struct {
	http    *http.Client
	timeout time.Duration
}

// NewClient creates a hardened client. The timeout bounds each individual
// request, not the lifetime of the client.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		timeout: timeout,
		http: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
				ForceAttemptHTTP2:   true,
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				DisableCompression:  false,
				MaxIdleConnsPerHost: 5,
			},
		},
	}
}

// Fetch performs a single GET and returns the status, headers, and body.
// The body is capped at maxBodySize.
func (c *Client) Fetch(ctx context.Context, rawURL string, headers map[string]string) (int, http.Header, []byte, error) {
	if err := ValidateURL(rawURL); err != nil {
		return 0, nil, nil, fmt.Errorf("invalid URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, resp.Header, nil, fmt.Errorf("reading response: %w", err)
	}

	return resp.StatusCode, resp.Header, body, nil
}

// Underlying exposes the wrapped *http.Client for callers that stream bodies
// themselves (the file downloader).
func (c *Client) Underlying() *http.Client {
	return c.http
}
