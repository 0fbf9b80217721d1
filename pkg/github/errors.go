package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrPermissionDenied indicates the authenticated user lacks write
// access to the target repository. The commit workflow checks for it
// before attempting any write call.
var ErrPermissionDenied = errors.New("write permission denied")

// APIError represents a GitHub API error response
type APIError struct {
	StatusCode int
	Message    string
	Errors     []APIErrorDetail `json:"errors,omitempty"`
	// Rate limit information when rate limited
	RateLimit *RateLimitInfo
}

// APIErrorDetail represents individual error details from GitHub
type APIErrorDetail struct {
	Resource string `json:"resource"`
	Field    string `json:"field"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// RateLimitInfo contains rate limit information from response headers
type RateLimitInfo struct {
	Limit     int
	Remaining int
	Reset     int64 // Unix timestamp
	Used      int
}

// Error returns the error message
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GitHub API error (status %d)", e.StatusCode)
}

// IsRateLimitError returns true if the error is a rate limit error
func IsRateLimitError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return true
		}
		if apiErr.StatusCode == http.StatusForbidden && apiErr.RateLimit != nil {
			return true
		}
	}
	return false
}

// IsNotFoundError returns true if the error is a not found error
func IsNotFoundError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	// go-github's ErrorResponse carries the status code in its message
	if err != nil && strings.Contains(err.Error(), "404") {
		return true
	}

	return false
}

// IsAuthenticationError returns true if the error is an authentication error
func IsAuthenticationError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if IsRateLimitError(err) {
			return false
		}
		return apiErr.StatusCode == http.StatusUnauthorized ||
			apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// IsPermissionDenied returns true for the ErrPermissionDenied sentinel
// or an API-level 403 that is not a rate limit response.
func IsPermissionDenied(err error) bool {
	if errors.Is(err, ErrPermissionDenied) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden && apiErr.RateLimit == nil
	}
	return false
}

// IsRetryableError returns true for transient transport-level failures
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	// Connection resets and refused connections surface as *net.OpError
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// parseErrorResponse parses an error response from GitHub
func parseErrorResponse(statusCode int, body []byte) *APIError {
	var apiErr APIError
	apiErr.StatusCode = statusCode

	var githubErr struct {
		Message string           `json:"message"`
		Errors  []APIErrorDetail `json:"errors"`
	}
	if err := json.Unmarshal(body, &githubErr); err == nil {
		apiErr.Message = githubErr.Message
		apiErr.Errors = githubErr.Errors
	} else {
		apiErr.Message = string(body)
	}

	return &apiErr
}
