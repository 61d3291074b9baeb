package source

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rrajen/sfdx-utility-plugins/internal/constants"
	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
	deverrors "github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

// timeSleep is a wrapper for time.After that can be overridden in tests.
//
//nolint:gochecknoglobals // Required for test mocking
var timeSleep = func(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// terminalErrors are never retried: asking again gives the same answer.
//
//nolint:gochecknoglobals // fixed lookup table
var terminalErrors = []error{
	deverrors.ErrUnauthorized,
	deverrors.ErrDeploymentNotFound,
	deverrors.ErrInvalidDocument,
	deverrors.ErrSourceUnavailable,
	deverrors.ErrDeploymentIDRequired,
	deverrors.ErrInvalidDeploymentID,
}

// isRetryable determines whether a fetch error should be retried.
// Cancellation and the terminal errors are final; network failures, 5xx
// responses, and per-attempt timeouts are transient.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) {
		return false
	}
	for _, terminal := range terminalErrors {
		if stderrors.Is(err, terminal) {
			return false
		}
	}
	return true
}

// RetryFetcher retries transient failures of another Fetcher with
// exponential backoff. Each attempt gets its own timeout.
type RetryFetcher struct {
	next        Fetcher
	maxAttempts int
	timeout     time.Duration
	backoff     time.Duration
}

// NewRetryFetcher wraps next. maxAttempts below 1 means one attempt; a zero
// timeout leaves attempts bounded only by the caller's context.
func NewRetryFetcher(next Fetcher, maxAttempts int, timeout time.Duration) *RetryFetcher {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryFetcher{
		next:        next,
		maxAttempts: maxAttempts,
		timeout:     timeout,
		backoff:     constants.InitialBackoff,
	}
}

// Name implements the logging name of the fetcher.
func (f *RetryFetcher) Name() string { return "retry(" + nameOf(f.next) + ")" }

// Fetch calls the wrapped fetcher until it succeeds, fails with a
// non-retryable error, or runs out of attempts.
func (f *RetryFetcher) Fetch(ctx context.Context, id string) (*deploystatus.Document, error) {
	logger := zerolog.Ctx(ctx)

	var lastErr error
	backoff := f.backoff

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		if attempt > 1 {
			logger.Debug().
				Int("attempt", attempt).
				Int("max_attempts", f.maxAttempts).
				Str("deployment_id", id).
				Msg("retrying deploy status fetch")
		}

		doc, err := f.attempt(ctx, id)
		if err == nil {
			if attempt > 1 {
				logger.Info().
					Int("attempt", attempt).
					Str("deployment_id", id).
					Msg("deploy status fetch succeeded after retry")
			}
			return doc, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if !isRetryable(err) {
			logger.Debug().
				Err(err).
				Int("attempt", attempt).
				Msg("deploy status fetch failed with non-retryable error")
			return nil, err
		}

		lastErr = err
		if attempt < f.maxAttempts {
			logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Int("max_attempts", f.maxAttempts).
				Dur("backoff", backoff).
				Msg("deploy status fetch failed, will retry after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-timeSleep(backoff):
				backoff *= constants.BackoffMultiplier
			}
		}
	}

	logger.Error().
		Err(lastErr).
		Int("max_attempts", f.maxAttempts).
		Str("deployment_id", id).
		Msg("deploy status fetch failed after max retries")

	return nil, fmt.Errorf("%w: max retries exceeded: %w", deverrors.ErrFetchFailed, lastErr)
}

func (f *RetryFetcher) attempt(ctx context.Context, id string) (*deploystatus.Document, error) {
	if f.timeout <= 0 {
		return f.next.Fetch(ctx, id)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	return f.next.Fetch(attemptCtx, id)
}
