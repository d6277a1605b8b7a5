package cron

import (
	"context"
	"time"
)

// InBatches runs fn over items in fixed-size sequential batches with a pause
// between batches, bounding peak load on the store and provider. A failing
// item counts toward failed and never stops its siblings; only context
// cancellation ends the run early.
func InBatches[T any](ctx context.Context, items []T, size int, delay time.Duration, fn func(context.Context, T) error) (failed int, err error) {
	if size <= 0 {
		size = 1
	}
	for start := 0; start < len(items); start += size {
		if start > 0 && delay > 0 {
			if err := sleep(ctx, delay); err != nil {
				return failed, err
			}
		}
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		for _, item := range items[start:end] {
			if err := ctx.Err(); err != nil {
				return failed, err
			}
			if err := fn(ctx, item); err != nil {
				failed++
			}
		}
	}
	return failed, nil
}

// sleep waits for d or until ctx is cancelled.
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
