package gateway

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/abhisek/persona/internal/ledger"
	"github.com/abhisek/persona/internal/quiz"
	"github.com/abhisek/persona/internal/result"
)

// RetryClient is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryClient struct {
	inner  Client
	config RetryConfig
}

// WithRetry wraps a Client with retry logic.
func WithRetry(c Client, cfg RetryConfig) Client {
	return &RetryClient{inner: c, config: cfg}
}

func (r *RetryClient) CreateSession(ctx context.Context, user UserData) (*SessionInfo, error) {
	return retry(ctx, r.config, func() (*SessionInfo, error) {
		return r.inner.CreateSession(ctx, user)
	})
}

func (r *RetryClient) ValidateSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	return retry(ctx, r.config, func() (*SessionInfo, error) {
		return r.inner.ValidateSession(ctx, sessionID)
	})
}

func (r *RetryClient) FetchSections(ctx context.Context, lang string) ([]quiz.Section, error) {
	return retry(ctx, r.config, func() ([]quiz.Section, error) {
		return r.inner.FetchSections(ctx, lang)
	})
}

func (r *RetryClient) SubmitResponse(ctx context.Context, sessionID string, resp ledger.Response) error {
	_, err := retry(ctx, r.config, func() (struct{}, error) {
		return struct{}{}, r.inner.SubmitResponse(ctx, sessionID, resp)
	})
	return err
}

func (r *RetryClient) SubmitBulk(ctx context.Context, sessionID string, responses []ledger.Response, lang string) error {
	_, err := retry(ctx, r.config, func() (struct{}, error) {
		return struct{}{}, r.inner.SubmitBulk(ctx, sessionID, responses, lang)
	})
	return err
}

func (r *RetryClient) CalculateResults(ctx context.Context, sessionID string, input CalculateInput) (*result.Payload, error) {
	return retry(ctx, r.config, func() (*result.Payload, error) {
		return r.inner.CalculateResults(ctx, sessionID, input)
	})
}

// retry runs call up to cfg.MaxAttempts times, backing off between
// attempts.
func retry[T any](ctx context.Context, cfg RetryConfig, call func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	invalidRetried := false

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		out, err := call()
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !shouldRetry(err, &invalidRetried) {
			return zero, err
		}

		// Last attempt — don't sleep, just return the error.
		if attempt == cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff(cfg, attempt)):
		}
	}

	return zero, lastErr
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error, invalidRetried *bool) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// A malformed result payload gets one retry.
	var invalid *ErrInvalidPayload
	if errors.As(err, &invalid) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	// Client errors other than rate limiting are not transient.
	var netErr *ErrNetwork
	if errors.As(err, &netErr) && netErr.StatusCode != 0 {
		if netErr.StatusCode == http.StatusTooManyRequests {
			return true
		}
		if netErr.StatusCode >= 400 && netErr.StatusCode < 500 {
			return false
		}
	}

	// Transport errors and 5xx are treated as transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func backoff(cfg RetryConfig, attempt int) time.Duration {
	wait := float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt))
	if wait > float64(cfg.MaxWait) {
		wait = float64(cfg.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
