package engine

import (
	"errors"
	"fmt"
)

// Common errors returned by engine clients.
var (
	// ErrNotFound indicates the engine has no record for the query.
	ErrNotFound = errors.New("not found")

	// ErrAuthError indicates an authentication error (missing/invalid API key).
	ErrAuthError = errors.New("authentication error")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrAPIError indicates a general API error.
	ErrAPIError = errors.New("API error")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response")
)

// APIError represents an error response from an engine's API.
type APIError struct {
	StatusCode int
	Engine     string // which engine produced the error
	Message    string
}

func (e *APIError) Error() string {
	if e.Engine != "" {
		return fmt.Sprintf("%s API error (status %d): %s", e.Engine, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}

// CheckStatus maps a non-2xx HTTP status to the matching error.
// engine names the client for APIError context.
func CheckStatus(statusCode int, engine string) error {
	switch {
	case statusCode == 401 || statusCode == 403:
		return fmt.Errorf("%w: status %d", ErrAuthError, statusCode)
	case statusCode == 429:
		return fmt.Errorf("%w: status %d", ErrRateLimited, statusCode)
	case statusCode == 404:
		return fmt.Errorf("%w: status %d", ErrNotFound, statusCode)
	case statusCode >= 400:
		return &APIError{
			StatusCode: statusCode,
			Engine:     engine,
			Message:    fmt.Sprintf("HTTP %d", statusCode),
		}
	}
	return nil
}
