package engine

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// RetryConfig controls transient-error retries on outbound HTTP.
type RetryConfig struct {
	Attempts int           // total tries, including the first
	BaseWait time.Duration // wait before the second try; doubles each retry
	MaxWait  time.Duration
}

// DefaultRetryConfig suits the search-provider and scrape calls.
var DefaultRetryConfig = RetryConfig{Attempts: 3, BaseWait: 400 * time.Millisecond, MaxWait: 5 * time.Second}

// DoWithRetry runs fn up to rc.Attempts times, backing off between tries.
// Non-retryable errors and context cancellation return immediately.
func DoWithRetry[T any](ctx context.Context, rc RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	wait := rc.BaseWait
	for attempt := 1; attempt <= rc.Attempts; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryable(err) || attempt == rc.Attempts {
			break
		}
		slog.Debug("retrying", slog.Int("attempt", attempt), slog.Duration("wait", wait), slog.Any("error", err))
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
		wait *= 2
		if wait > rc.MaxWait {
			wait = rc.MaxWait
		}
	}
	return zero, lastErr
}

// RetryHTTP executes an HTTP request function with retry on transient
// failures and retryable status codes (429, 5xx).
func RetryHTTP(ctx context.Context, rc RetryConfig, fn func() (*http.Response, error)) (*http.Response, error) {
	return DoWithRetry(ctx, rc, func() (*http.Response, error) {
		resp, err := fn()
		if err != nil {
			return nil, err
		}
		if isRetryableStatus(resp.StatusCode) {
			resp.Body.Close()
			return nil, &httpStatusError{StatusCode: resp.StatusCode}
		}
		return resp, nil
	})
}

// httpStatusError wraps a retryable HTTP status code.
type httpStatusError struct {
	StatusCode int
}

func (e *httpStatusError) Error() string {
	return http.StatusText(e.StatusCode)
}

func isRetryable(err error) bool {
	var httpErr *httpStatusError
	if errors.As(err, &httpErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
