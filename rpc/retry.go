package rpc

import (
	"context"
	"time"
)

// backoffSchedule is the fixed retry back-off, in seconds, every facade
// call uses once its effective retry flag is set.
var backoffSchedule = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	3 * time.Second,
	5 * time.Second,
	8 * time.Second,
}

// RetryOverride lets an individual facade call override the client's
// global retry-on-error/retry-on-none defaults. A nil override falls
// back to the client default.
type RetryOverride struct {
	RetryOnError *bool
	RetryOnNone  *bool
}

func effective(override *bool, clientDefault bool) bool {
	if override != nil {
		return *override
	}
	return clientDefault
}

// withRetry runs fn, retrying on a non-nil error according to the
// effective retry-on-error flag, following the fixed back-off schedule
// and giving up with the last error once it is exhausted.
func withRetry[T any](ctx context.Context, retryOnError bool, fn func(ctx context.Context) (T, error)) (T, error) {
	result, err := fn(ctx)
	if err == nil || !retryOnError {
		return result, err
	}

	for _, wait := range backoffSchedule {
		if sleepErr := sleep(ctx, wait); sleepErr != nil {
			var zero T
			return zero, sleepErr
		}
		result, err = fn(ctx)
		if err == nil {
			return result, nil
		}
	}
	return result, err
}

// withRetryOnNone runs fn, retrying while it returns (nil, nil) per the
// effective retry-on-none flag, and always retries a hard error per
// retryOnError — both overrides apply to the same call, as the spec's
// Option<T>-returning facade methods require.
func withRetryOnNone[T any](ctx context.Context, retryOnError, retryOnNone bool, fn func(ctx context.Context) (*T, error)) (*T, error) {
	attempt := func(ctx context.Context) (*T, error) {
		return withRetry(ctx, retryOnError, fn)
	}

	result, err := attempt(ctx)
	if err != nil || result != nil || !retryOnNone {
		return result, err
	}

	for _, wait := range backoffSchedule {
		if sleepErr := sleep(ctx, wait); sleepErr != nil {
			return nil, sleepErr
		}
		result, err = attempt(ctx)
		if err != nil || result != nil {
			return result, err
		}
	}
	return nil, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
