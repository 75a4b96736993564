package llm

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// RetryConfig bounds the retry loop.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseWait is the wait before the second attempt; each subsequent wait
	// doubles it (BaseWait, 2*BaseWait, 4*BaseWait, ...).
	BaseWait time.Duration
}

// DefaultRetryConfig waits 1s, 2s, 4s, ... between attempts.
func DefaultRetryConfig(maxAttempts int) RetryConfig {
	return RetryConfig{MaxAttempts: maxAttempts, BaseWait: time.Second}
}

// RetryProvider decorates a Provider with bounded exponential backoff.
// Every failure is retried — network errors, non-success statuses, empty
// payloads and shape-validation failures alike — except context
// cancellation. After the final attempt the last error is returned.
type RetryProvider struct {
	inner  Provider
	config RetryConfig

	// sleep waits for d or until ctx is done. Replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) *RetryProvider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.BaseWait <= 0 {
		cfg.BaseWait = time.Second
	}
	return &RetryProvider{inner: p, config: cfg, sleep: sleepCtx}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	var lastErr error

	wait := r.config.BaseWait
	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		raw, err := r.inner.Generate(ctx, req)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		// Last attempt: no wait, just report.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		if err := r.sleep(ctx, wait); err != nil {
			return nil, err
		}
		wait *= 2
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
