// internal/benchmark/retry.go
package benchmark

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/mwiater/frameworkstats/internal/logging"
)

// RetryPolicy bounds how often a failed measurement or scoring round is repeated.
type RetryPolicy struct {
	MaxRetries int
	Base       time.Duration
}

func (p RetryPolicy) backoff() retry.Backoff {
	base := p.Base
	if base <= 0 {
		base = time.Millisecond
	}
	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return retry.WithMaxRetries(uint64(retries), retry.NewExponential(base))
}

// withRetry calls fn until it succeeds, the policy is exhausted, or ctx ends.
// The error of the last attempt is returned unwrapped.
func withRetry[T any](ctx context.Context, p RetryPolicy, label string, fn func(context.Context) (T, error)) (T, error) {
	var (
		out     T
		attempt int
	)
	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		attempt++
		v, err := fn(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			logging.LogWarn("%s: attempt %d of %d failed: %v", label, attempt, p.MaxRetries+1, err)
			return retry.RetryableError(err)
		}
		out = v
		return nil
	})
	return out, err
}
