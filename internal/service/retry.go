package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/aimock/aimock-api/internal/generation"
)

// Retry defaults. The interval leaves a small margin over the gate's minimum
// spacing so a retried request is not throttled again.
const (
	DefaultThrottleRetries       = 2
	DefaultThrottleRetryInterval = generation.DefaultMinInterval + 50*time.Millisecond
)

// RetryPolicy controls how client-throttled generation requests are retried.
// Only errors of generation.KindClientThrottle are retried; every other
// failure, including an upstream rate limit, is returned immediately.
type RetryPolicy struct {
	MaxRetries int
	Interval   time.Duration
}

// DefaultRetryPolicy returns the policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: DefaultThrottleRetries, Interval: DefaultThrottleRetryInterval}
}

// Option configures the interview and answer services.
type Option func(*options)

type options struct {
	retry RetryPolicy
}

// WithRetryPolicy overrides the default throttle retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(o *options) {
		o.retry = p
	}
}

func buildOptions(opts []Option) options {
	o := options{retry: DefaultRetryPolicy()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.retry.MaxRetries < 0 {
		o.retry.MaxRetries = 0
	}
	if o.retry.Interval <= 0 {
		o.retry.Interval = DefaultThrottleRetryInterval
	}
	return o
}

// retryThrottled runs fn until it succeeds, fails with an error that is not a
// client throttle, the retries are exhausted, or ctx is done.
func retryThrottled[T any](
	ctx context.Context,
	p RetryPolicy,
	log *slog.Logger,
	operation string,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	var result T
	attempt := 0

	op := func() error {
		attempt++
		res, err := fn(ctx)
		if err == nil {
			result = res
			return nil
		}
		if kind, ok := generation.KindOf(err); ok && kind == generation.KindClientThrottle {
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Interval), uint64(p.MaxRetries)),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		log.InfoContext(ctx, "generation request throttled, retrying",
			"operation", operation,
			"attempt", attempt,
			"wait_ms", wait.Milliseconds())
	}

	if err := backoff.RetryNotify(op, b, notify); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
