package api

import "fmt"

// AuthError indicates the analysis API rejected the credential (HTTP 401).
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return "invalid API key: " + e.Detail
	}
	return "invalid API key"
}

// RateLimitError indicates the analysis API throttled the request (HTTP 429).
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}

// APIError is any other non-2xx response from the analysis API. Detail
// carries the server-provided error message when the response body had
// one, otherwise the raw body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Detail)
}
