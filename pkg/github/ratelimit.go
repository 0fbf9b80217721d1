package github

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimitStatus is a snapshot of the API rate limit state as last
// reported by response headers.
type RateLimitStatus struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// RateLimitTracker observes X-RateLimit-* headers on responses and can
// block a caller until the limit window resets.
type RateLimitTracker struct {
	mu     sync.RWMutex
	status RateLimitStatus
}

// NewRateLimitTracker creates an empty tracker
func NewRateLimitTracker() *RateLimitTracker {
	return &RateLimitTracker{}
}

// Update records rate limit headers from a response
func (t *RateLimitTracker) Update(resp *http.Response) {
	limit, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))
	if err != nil {
		return
	}
	remaining, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
	if err != nil {
		return
	}

	var reset time.Time
	if v, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		reset = time.Unix(v, 0)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = RateLimitStatus{Limit: limit, Remaining: remaining, Reset: reset}
}

// GetStatus returns the last observed rate limit status
func (t *RateLimitTracker) GetStatus() RateLimitStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// WaitForRateLimitReset blocks until the rate limit window resets when
// no requests remain. Returns immediately when requests are available
// or no limit has been observed yet.
func (t *RateLimitTracker) WaitForRateLimitReset(ctx context.Context) error {
	t.mu.RLock()
	status := t.status
	t.mu.RUnlock()

	if status.Limit == 0 || status.Remaining > 0 {
		return nil
	}

	wait := time.Until(status.Reset)
	if wait <= 0 {
		return nil
	}

	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RetryConfig controls retry behavior for the direct HTTP path
type RetryConfig struct {
	// MaxAttempts is the total number of attempts including the first
	MaxAttempts int
	// BaseDelay is the delay before the first retry
	BaseDelay time.Duration
	// MaxDelay caps the exponential backoff
	MaxDelay time.Duration
	// RetryStatuses lists HTTP status codes worth retrying
	RetryStatuses []int
}

// DefaultRetryConfig returns the retry policy used by the CLI:
// three attempts with exponential backoff on 5xx and 429.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   3,
		BaseDelay:     500 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		RetryStatuses: []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
	}
}

// ShouldRetry reports whether a response status code warrants a retry
func (c *RetryConfig) ShouldRetry(statusCode int) bool {
	for _, s := range c.RetryStatuses {
		if s == statusCode {
			return true
		}
	}
	return false
}

// GetDelay returns the backoff delay for the given retry index (0-based)
func (c *RetryConfig) GetDelay(retry int) time.Duration {
	delay := time.Duration(float64(c.BaseDelay) * math.Pow(2, float64(retry)))
	if c.MaxDelay > 0 && delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}
