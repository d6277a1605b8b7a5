package providers

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingProvider struct {
	calls int
}

func (c *countingProvider) FetchField(ctx context.Context) (*Field, error) {
	_ = ctx
	c.calls++
	return &Field{}, nil
}

func (c *countingProvider) FetchLive(ctx context.Context) (*Live, error) {
	_ = ctx
	c.calls++
	return &Live{}, nil
}

func (c *countingProvider) FetchRankings(ctx context.Context) ([]Ranking, error) {
	_ = ctx
	c.calls++
	return nil, nil
}

func TestRateLimitedProviderSpacesCalls(t *testing.T) {
	inner := &countingProvider{}
	rl := NewRateLimitedProvider(inner, 10*time.Millisecond, nil)

	start := time.Now()
	if _, err := rl.FetchLive(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := rl.FetchField(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < 10*time.Millisecond {
		t.Fatalf("expected second call to wait for its slot, elapsed %s", elapsed)
	}
	if inner.calls != 2 {
		t.Fatalf("expected inner provider called twice, got %d", inner.calls)
	}
}

func TestRateLimitedProviderFirstCallImmediate(t *testing.T) {
	inner := &countingProvider{}
	rl := NewRateLimitedProvider(inner, time.Minute, nil)

	start := time.Now()
	if _, err := rl.FetchRankings(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected first call without delay, elapsed %s", elapsed)
	}
}

func TestRateLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := &countingProvider{}
	rl := NewRateLimitedProvider(inner, time.Minute, nil)

	// First call claims the slot so the second has to wait a full interval.
	if _, err := rl.FetchLive(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.FetchLive(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected inner provider not called on canceled context, got %d", inner.calls)
	}
}

func TestRateLimitedProviderHandlesNilInner(t *testing.T) {
	var inner DataProvider
	rl := NewRateLimitedProvider(inner, time.Millisecond, nil)

	_, err := rl.FetchField(context.Background())
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedProviderDefaultsInterval(t *testing.T) {
	rl := NewRateLimitedProvider(&countingProvider{}, 0, nil).(*rateLimitedProvider)
	if rl.interval != time.Second {
		t.Fatalf("expected default interval 1s, got %s", rl.interval)
	}
}
