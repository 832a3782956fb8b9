package engine

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{Attempts: 3, BaseWait: time.Millisecond, MaxWait: 5 * time.Millisecond}
}

func TestDoWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		got, err := DoWithRetry(ctx, fastRetry(), func() (string, error) {
			calls++
			return "ok", nil
		})
		if err != nil || got != "ok" || calls != 1 {
			t.Fatalf("got=%q err=%v calls=%d", got, err, calls)
		}
	})

	t.Run("retries transient errors", func(t *testing.T) {
		calls := 0
		got, err := DoWithRetry(ctx, fastRetry(), func() (int, error) {
			calls++
			if calls < 3 {
				return 0, &net.OpError{Op: "dial", Err: errors.New("connection refused")}
			}
			return 42, nil
		})
		if err != nil || got != 42 || calls != 3 {
			t.Fatalf("got=%d err=%v calls=%d", got, err, calls)
		}
	})

	t.Run("non-retryable errors return immediately", func(t *testing.T) {
		calls := 0
		boom := errors.New("bad request")
		_, err := DoWithRetry(ctx, fastRetry(), func() (int, error) {
			calls++
			return 0, boom
		})
		if !errors.Is(err, boom) || calls != 1 {
			t.Fatalf("err=%v calls=%d", err, calls)
		}
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := DoWithRetry(cctx, fastRetry(), func() (int, error) {
			return 0, &net.OpError{Op: "dial", Err: errors.New("refused")}
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	})
}

func TestIsRetryableStatus(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503, 504} {
		if !isRetryableStatus(code) {
			t.Errorf("status %d should be retryable", code)
		}
	}
	for _, code := range []int{200, 400, 401, 403, 404} {
		if isRetryableStatus(code) {
			t.Errorf("status %d should not be retryable", code)
		}
	}
}

func TestRetryHTTP(t *testing.T) {
	ctx := context.Background()
	t.Run("retries a 503 then succeeds", func(t *testing.T) {
		calls := 0
		resp, err := RetryHTTP(ctx, fastRetry(), func() (*http.Response, error) {
			calls++
			if calls == 1 {
				return &http.Response{StatusCode: http.StatusServiceUnavailable, Body: http.NoBody}, nil
			}
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		})
		if err != nil || resp.StatusCode != http.StatusOK || calls != 2 {
			t.Fatalf("resp=%v err=%v calls=%d", resp, err, calls)
		}
	})
}
