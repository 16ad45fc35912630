// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Config holds the HTTP client configuration
type Config struct {
	Timeout time.Duration
}

// DefaultConfig returns the default HTTP client configuration
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
	}
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Client is a thin wrapper around http.Client which reads the whole body
type Client struct {
	httpClient *http.Client
}

// Request performs a single HTTP request, there is no retry
func (c *Client) Request(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Headers:    resp.Header,
	}, nil
}

// NewClient creates a new Client
func NewClient(config Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}
