package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a DataProvider with retry/backoff behavior. Rate
// limit responses honor the upstream Retry-After; other failures back off
// linearly with jitter.
type retryingProvider struct {
	inner        DataProvider
	logger       *slog.Logger
	recorder     *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc
	rng          *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If
// maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) DataProvider {
	return NewRetryingProviderWithRNG(inner, logger, recorder, name, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with an injectable RNG
// for deterministic jitter in tests.
func NewRetryingProviderWithRNG(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, backoff time.Duration) DataProvider {
	if name == "" {
		name = "provider"
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		recorder:     recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
		rng: rng,
	}
}

func (r *retryingProvider) FetchField(ctx context.Context) (*Field, error) {
	return fetchWithRetry(ctx, r, "field", func(ctx context.Context) (*Field, error) {
		return r.inner.FetchField(ctx)
	})
}

func (r *retryingProvider) FetchLive(ctx context.Context) (*Live, error) {
	return fetchWithRetry(ctx, r, "in-play", func(ctx context.Context) (*Live, error) {
		return r.inner.FetchLive(ctx)
	})
}

func (r *retryingProvider) FetchRankings(ctx context.Context) ([]Ranking, error) {
	return fetchWithRetry(ctx, r, "rankings", func(ctx context.Context) ([]Ranking, error) {
		return r.inner.FetchRankings(ctx)
	})
}

// computeDelay returns how long to wait before the next attempt. Rate limit
// errors with an explicit Retry-After win; everything else gets the backoff
// for this attempt with jitter in [base/2, base].
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}

	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2
	return half + time.Duration(r.rng.Int63n(int64(half)+1))
}

func fetchWithRetry[T any](ctx context.Context, r *retryingProvider, feed string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if r.inner == nil {
		return zero, ErrProviderUnavailable
	}

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		result, err := fetch(ctx)
		r.recorder.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}

		if attempt == r.maxAttempts {
			break
		}

		delay := r.computeDelay(err, attempt)
		r.logWarn(ctx, "provider fetch retry",
			"provider", r.providerName,
			"feed", feed,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay", delay.String(),
			"err", err,
		)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	r.logWarn(ctx, "provider fetch failed",
		"provider", r.providerName,
		"feed", feed,
		"attempts", r.maxAttempts,
		"err", lastErr,
	)
	return zero, lastErr
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logging.Warn(logging.FromContext(ctx, r.logger), msg, args...)
}
