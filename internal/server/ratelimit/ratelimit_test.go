package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/success-predictor/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	l := NewLimiter(cfg)
	l.now = clock.Now
	t.Cleanup(l.Stop)
	return l, clock
}

func TestTokenBucket_TakeAndRefill(t *testing.T) {
	now := time.Now()
	b := newTokenBucket(10, 1.0, now)

	for i := 0; i < 10; i++ {
		allowed, remaining, _, _ := b.take(now)
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 9-i, remaining)
	}

	allowed, _, reset, retryAfter := b.take(now)
	assert.False(t, allowed)
	assert.Equal(t, now.Add(10*time.Second), reset)
	assert.Equal(t, time.Second, retryAfter)

	allowed, _, _, _ = b.take(now.Add(1100 * time.Millisecond))
	assert.True(t, allowed, "one token refilled after a second")
	allowed, _, _, _ = b.take(now.Add(1100 * time.Millisecond))
	assert.False(t, allowed)
}

func TestTokenBucket_NeverExceedsCapacity(t *testing.T) {
	now := time.Now()
	b := newTokenBucket(3, 1.0, now)

	_, remaining, reset, _ := b.take(now.Add(time.Hour))

	assert.Equal(t, 2, remaining)
	assert.True(t, reset.After(now.Add(time.Hour)))
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/api/ping", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/api/ping", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)

	other, _ := l.Allow("127.0.0.2", "/api/ping", "GET")
	assert.True(t, other, "clients have separate buckets")
}

func TestLimiter_RefillsOverTime(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Minute,
	})

	l.Allow("c", "/x", "GET")
	l.Allow("c", "/x", "GET")
	allowed, _ := l.Allow("c", "/x", "GET")
	require.False(t, allowed)

	clock.Advance(31 * time.Second)

	allowed, _ = l.Allow("c", "/x", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})

	for i := 0; i < 50; i++ {
		allowed, info := l.Allow("10.0.0.1", "/api/ping", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}

	allowed, _ := l.Allow("10.0.0.2", "/api/ping", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})

	for i := 0; i < 20; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/api/prediction", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_PredictionBudget(t *testing.T) {
	settings := config.Defaults().RateLimit
	settings.PredictionLimit = 10
	settings.PredictionBurst = 3
	l, _ := newTestLimiter(t, FromSettings(settings))

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("c", PredictionPath, "POST")
		require.True(t, allowed, "burst request %d", i+1)
		assert.Equal(t, 10, info.Limit)
	}
	allowed, _ := l.Allow("c", PredictionPath, "POST")
	assert.False(t, allowed, "burst exhausted")

	allowed, info := l.Allow("c", "/api/ping", "GET")
	assert.True(t, allowed, "other routes use the default budget")
	assert.Equal(t, settings.DefaultLimit, info.Limit)
}

func TestLimiter_ExemptEndpoints(t *testing.T) {
	settings := config.Defaults().RateLimit
	settings.DefaultLimit = 1
	l, _ := newTestLimiter(t, FromSettings(settings, "/prom"))

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("c", HealthPath, "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
		allowed, _ = l.Allow("c", "/prom", "GET")
		require.True(t, allowed)
	}

	allowed, _ := l.Allow("c", "/metrics", "GET")
	assert.True(t, allowed, "first request fits the default budget")
	allowed, _ = l.Allow("c", "/metrics", "GET")
	assert.False(t, allowed, "only the configured metrics path is exempt")

	allowed, _ = l.Allow("c", "/prom", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/prom", "POST")
	assert.False(t, allowed, "exemption covers GET only")
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})

	var allowedCount atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/x", "GET"); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowedCount.Load())
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		IdleTTL:       time.Hour,
	})

	for i := 0; i < 10; i++ {
		l.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/x", "GET")
	}
	require.Equal(t, 10, l.size())

	clock.Advance(30 * time.Minute)
	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/x", "GET")
	}
	clock.Advance(45 * time.Minute)

	l.cleanup()

	assert.Equal(t, 5, l.size())
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	assert.NotPanics(t, func() {
		l.Stop()
		l.Stop()
	})
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l, _ := newTestLimiter(t, nil)

	allowed, info := l.Allow("127.0.0.1", "/x", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestFromSettings(t *testing.T) {
	settings := config.Defaults().RateLimit
	settings.Whitelist = []string{" 10.0.0.1 ", ""}
	settings.Blacklist = []string{"10.0.0.9"}

	cfg := FromSettings(settings)

	assert.True(t, cfg.Enabled)
	assert.Equal(t, map[string]bool{"10.0.0.1": true}, cfg.Whitelist)
	assert.Equal(t, map[string]bool{"10.0.0.9": true}, cfg.Blacklist)
	require.Len(t, cfg.EndpointConfigs, 1)
	assert.Equal(t, PredictionPath, cfg.EndpointConfigs[0].Path)
	assert.Equal(t, map[string]bool{HealthPath: true}, cfg.ExemptPaths)
	assert.Equal(t, map[string]bool{HealthPath: true, "/prom": true}, FromSettings(settings, "/prom").ExemptPaths)

	settings.Enabled = false
	assert.False(t, FromSettings(settings).Enabled)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/prediction", Method: "POST", Limit: 5, Window: time.Minute},
		{Path: "/api/assessment/", Method: "POST", Limit: 7, Window: time.Minute},
	}

	assert.Equal(t, 5, MatchEndpoint("/api/prediction", "POST", configs).Limit)
	assert.Equal(t, 7, MatchEndpoint("/api/assessment/validate", "POST", configs).Limit)
	assert.Nil(t, MatchEndpoint("/api/prediction", "GET", configs))
	assert.Nil(t, MatchEndpoint("/api/demo", "GET", configs))
	assert.Nil(t, MatchEndpoint("/health", "GET", configs))
}
