// Package api is the HTTP client for the ProdSensor analysis service.
//
// The client performs exactly one request per call: retry and backoff
// decisions belong to the caller (the poll loop in internal/analysis).
// Failures are reported as typed errors (AuthError, RateLimitError,
// APIError) so callers classify outcomes without matching message text.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prodsensor/action/internal/version"
)

// requestTimeout bounds each individual HTTP call so a hung socket
// surfaces as a transport error instead of stalling the poll loop.
const requestTimeout = 30 * time.Second

// Client issues authenticated requests against one analysis API endpoint.
type Client struct {
	baseURL   string
	apiKey    string
	requestID string
	http      *http.Client
}

// NewClient creates a client for the given base URL and API key. The
// trailing slash is stripped so paths can be joined naively. All requests
// from one client share an X-Request-ID, correlating the invocation's
// calls in server logs.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		requestID: uuid.NewString(),
		http:      &http.Client{Timeout: requestTimeout},
	}
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// errorBody is the shape of the API's error responses.
type errorBody struct {
	Detail string `json:"detail"`
}

// Do issues one request and decodes the JSON response into out (skipped
// when out is nil). body, when non-nil, is marshaled as the JSON request
// body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("X-Request-ID", c.requestID)
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &AuthError{Detail: readDetail(resp.Body)}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{}
	case resp.StatusCode >= 400:
		return &APIError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: parse response: %w", method, path, err)
	}
	return nil
}

// readDetail extracts the server's "detail" message from an error
// response, falling back to the raw body.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	var eb errorBody
	if json.Unmarshal(data, &eb) == nil && eb.Detail != "" {
		return eb.Detail
	}
	return strings.TrimSpace(string(data))
}
