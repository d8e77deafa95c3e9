package dbx

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/sethvargo/go-retry"
)

// ConnectWithRetry calls connect up to attempts times, sleeping delay between
// failures. It returns the last connect error once attempts are exhausted, or
// ctx.Err() if ctx ends first.
func ConnectWithRetry(ctx context.Context, logger logging.Logger, target string, attempts int, delay time.Duration, connect func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	if delay <= 0 {
		delay = time.Millisecond
	}

	b := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(delay))

	attempt := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if err := connect(ctx); err != nil {
			logger.Warn(ctx, "store connection attempt failed",
				"target", target, "attempt", attempt, "attempts", attempts, "retry_in", delay.String(), "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "store connection failed", "target", target, "attempts", attempt)
		return fmt.Errorf("connect %s after %d attempts: %w", target, attempt, err)
	}

	logger.Info(ctx, "store connection established", "target", target, "attempt", attempt)
	return nil
}
