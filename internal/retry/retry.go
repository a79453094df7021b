package retry

import (
	"context"
	"math"
	"time"

	pcerrors "github.com/alexisbeaulieu97/pipecheck/pkg/errors"
)

// Policy defines the bounds of a retry loop. MaxAttempts counts every
// execution of the operation, including the first one.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

// DefaultPolicy mirrors the retry budget used by the checksum verifier:
// four attempts with a half-second base delay doubling between attempts.
var DefaultPolicy = Policy{
	MaxAttempts: 4,
	BaseDelay:   500 * time.Millisecond,
	Multiplier:  2.0,
	MaxDelay:    30 * time.Second,
}

// Classifier decides whether a failure is worth retrying. Returning false
// propagates the error immediately, untouched.
type Classifier func(err error) bool

// Do executes op up to policy.MaxAttempts times, sleeping an exponentially
// growing delay between failed attempts. Non-retryable failures propagate
// immediately; once the budget is spent the last failure is wrapped in a
// *errors.RetryExhaustedError. The backoff sleep honours ctx cancellation.
func Do[T any](ctx context.Context, policy Policy, retryable Classifier, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		if retryable != nil && !retryable(err) {
			return zero, err
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff(attempt, policy)):
		}
	}

	return zero, pcerrors.NewRetryExhaustedError(attempts, lastErr)
}

func backoff(attempt int, policy Policy) time.Duration {
	base := policy.BaseDelay
	if base <= 0 {
		base = DefaultPolicy.BaseDelay
	}
	multiplier := policy.Multiplier
	if multiplier < 1 {
		multiplier = DefaultPolicy.Multiplier
	}

	delay := float64(base) * math.Pow(multiplier, float64(attempt))
	if policy.MaxDelay > 0 && delay > float64(policy.MaxDelay) {
		delay = float64(policy.MaxDelay)
	}
	return time.Duration(delay)
}
