// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dataverse/atlan-migration/pkg/errors"
)

// Caller defines the behavior of a request caller
type Caller interface {
	Call(ctx context.Context, resp any) (int, error)
}

// RequestOption defines a functional option for configuring APIRequest
type RequestOption func(*apiRequest)

type apiRequest struct {
	httpClient  *Client
	Method      string
	URL         string
	Body        any
	Token       string
	Headers     map[string]string
	Description string
}

// WithMethod sets the HTTP method for the request
func WithMethod(method string) RequestOption {
	return func(req *apiRequest) {
		req.Method = method
	}
}

// WithURL sets the full URL for the request
func WithURL(url string) RequestOption {
	return func(req *apiRequest) {
		req.URL = url
	}
}

// WithBody sets the request body, it is sent as JSON
func WithBody(body any) RequestOption {
	return func(req *apiRequest) {
		req.Body = body
	}
}

// WithToken sets the bearer token
func WithToken(token string) RequestOption {
	return func(req *apiRequest) {
		req.Token = token
	}
}

// WithHeader sets an extra request header, it overrides the defaults
func WithHeader(key, value string) RequestOption {
	return func(req *apiRequest) {
		if req.Headers == nil {
			req.Headers = make(map[string]string)
		}
		req.Headers[key] = value
	}
}

// WithDescription sets a description for the request (used in logging)
func WithDescription(description string) RequestOption {
	return func(req *apiRequest) {
		req.Description = description
	}
}

// Call makes an HTTP call with a configured data.
//
// The returned status code is -1 when no response was received. Any status
// outside 2xx is returned together with a typed error built from it.
func (a *apiRequest) Call(ctx context.Context, resp any) (int, error) {
	if a.URL == "" {
		return -1, errors.NewValidation("URL is required")
	}

	if strings.TrimSpace(a.Method) == "" {
		return -1, errors.NewValidation("HTTP method is required")
	}

	var (
		requestBody []byte
		err         error
	)

	if a.Body != nil {
		requestBody, err = json.Marshal(a.Body)
		if err != nil {
			return -1, errors.NewUnexpected("failed to marshal request body", err)
		}
	}

	slog.DebugContext(ctx, "calling API",
		"method", a.Method,
		"url", a.URL,
		"request_body", string(requestBody))

	headers := map[string]string{
		"Accept": "application/json",
	}

	// Prepare headers (normalize Authorization token)
	if authHeader := strings.TrimSpace(a.Token); authHeader != "" {
		if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			authHeader = "Bearer " + authHeader
		}
		headers["Authorization"] = authHeader
	}

	if a.Body != nil {
		headers["Content-Type"] = "application/json"
	}

	for key, value := range a.Headers {
		headers[key] = value
	}

	var bodyReader io.Reader
	if requestBody != nil {
		bodyReader = bytes.NewReader(requestBody)
	}

	response, err := a.httpClient.Request(ctx, a.Method, a.URL, bodyReader, headers)
	if err != nil {
		slog.ErrorContext(ctx, "API request failed",
			"error", err,
			"method", a.Method,
			"description", a.Description)
		return -1, errors.NewUnexpected("API request failed", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		slog.ErrorContext(ctx, "API returned error",
			"status_code", response.StatusCode,
			"response_body", string(response.Body),
			"method", a.Method,
			"description", a.Description)
		return response.StatusCode, ErrorFromStatusCode(response.StatusCode,
			fmt.Sprintf("%s returned status %d: %s", a.Description, response.StatusCode, strings.TrimSpace(string(response.Body))))
	}

	// If caller doesn't need the body or there's no content, skip JSON decoding.
	if resp == nil || len(response.Body) == 0 {
		slog.DebugContext(ctx, "API call successful",
			"method", a.Method,
			"status_code", response.StatusCode,
			"description", a.Description,
			"empty_body", len(response.Body) == 0)
		return response.StatusCode, nil
	}

	if err := json.Unmarshal(response.Body, resp); err != nil {
		slog.ErrorContext(ctx, "failed to parse API response", "error", err)
		return response.StatusCode, errors.NewUnexpected("failed to parse API response", err)
	}

	slog.DebugContext(ctx, "API call successful",
		"method", a.Method,
		"status_code", response.StatusCode,
		"description", a.Description)

	return response.StatusCode, nil
}

// NewAPIRequest creates a new APIRequest with the provided options
func NewAPIRequest(httpClient *Client, options ...RequestOption) Caller {
	req := &apiRequest{
		httpClient: httpClient,
	}

	for _, option := range options {
		option(req)
	}

	return req
}
