package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock drives limiter time in tests so refill is deterministic.
type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *manualClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(config *Config) (*Limiter, *manualClock) {
	if config != nil {
		config.CleanupInterval = 0 // no janitor goroutine in tests
	}
	clock := &manualClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	l := NewLimiter(config)
	l.now = clock.now
	return l, clock
}

func analyzeConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/analyze", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		},
	}
}

func TestBucket_BurstThenDeny(t *testing.T) {
	clock := &manualClock{t: time.Now()}
	b := newBucket(5, 1, clock.now)

	for i := 0; i < 5; i++ {
		ok, _, _ := b.take()
		require.True(t, ok, "burst request %d", i+1)
	}
	ok, remaining, _ := b.take()
	assert.False(t, ok, "burst exhausted")
	assert.Equal(t, 0, remaining)
}

func TestBucket_RefillsOverTime(t *testing.T) {
	clock := &manualClock{t: time.Now()}
	b := newBucket(2, 0.5, clock.now) // one token every 2s

	for i := 0; i < 2; i++ {
		ok, _, _ := b.take()
		require.True(t, ok)
	}
	ok, _, _ := b.take()
	require.False(t, ok)

	clock.advance(2 * time.Second)
	ok, _, _ = b.take()
	assert.True(t, ok, "one token should have come back")
	ok, _, _ = b.take()
	assert.False(t, ok, "only one token should have come back")
}

func TestBucket_FullAtTracksDeficit(t *testing.T) {
	clock := &manualClock{t: time.Now()}
	b := newBucket(1, 1, clock.now)

	_, _, fullAt := b.take()
	assert.Equal(t, clock.now().Add(time.Second), fullAt,
		"one consumed token at 1/s refills in one second")
}

func TestLimiter_AnalyzeBudget(t *testing.T) {
	l, _ := newTestLimiter(analyzeConfig())
	defer l.Stop()

	student := "10.0.0.7"
	for i := 0; i < 5; i++ {
		allowed, info := l.Allow(student, "/analyze", "POST")
		require.True(t, allowed, "burst request %d", i+1)
		assert.Equal(t, 30, info.Limit)
	}

	allowed, info := l.Allow(student, "/analyze", "POST")
	assert.False(t, allowed, "analyze burst is 5")
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiter_BudgetsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(analyzeConfig())
	defer l.Stop()

	// Drain one student's analyze budget.
	for i := 0; i < 5; i++ {
		l.Allow("10.0.0.7", "/analyze", "POST")
	}
	allowed, _ := l.Allow("10.0.0.7", "/analyze", "POST")
	require.False(t, allowed)

	// Same student, different endpoint: falls through to the default limit.
	allowed, info := l.Allow("10.0.0.7", "/contests", "GET")
	assert.True(t, allowed, "an exhausted analyze budget must not block reads")
	assert.Equal(t, 1000, info.Limit)

	// Different student, same endpoint.
	allowed, _ = l.Allow("10.0.0.8", "/analyze", "POST")
	assert.True(t, allowed, "budgets are per client")
}

func TestLimiter_BudgetRecoversWithTime(t *testing.T) {
	l, clock := newTestLimiter(analyzeConfig())
	defer l.Stop()

	for i := 0; i < 5; i++ {
		l.Allow("10.0.0.7", "/analyze", "POST")
	}
	allowed, _ := l.Allow("10.0.0.7", "/analyze", "POST")
	require.False(t, allowed)

	// 30 per hour is one token every 2 minutes.
	clock.advance(2 * time.Minute)
	allowed, _ = l.Allow("10.0.0.7", "/analyze", "POST")
	assert.True(t, allowed, "window elapsed, one token back")
	allowed, _ = l.Allow("10.0.0.7", "/analyze", "POST")
	assert.False(t, allowed)
}

func TestLimiter_UnlimitedRoutes(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
	})
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := l.Allow("10.0.0.7", "/metrics", "GET")
		require.True(t, allowed, "metrics scrape %d", i+1)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})
	defer l.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/analyze", "POST")
		require.True(t, allowed, "whitelisted client is never limited")
	}

	allowed, _ := l.Allow("10.0.0.2", "/contests", "GET")
	assert.False(t, allowed, "blacklisted client is always denied")
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("10.0.0.7", "/analyze", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_ConcurrentTakesExactBudget(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Hour,
	})
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow("10.0.0.7", "/contests", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount)
}

func TestLimiter_EvictsIdleBuckets(t *testing.T) {
	l, clock := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	for i := 0; i < 8; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i+1), "/contests", "GET")
	}
	require.Len(t, l.entries, 8)

	// Keep two clients warm past the idle cutoff.
	clock.advance(idleEviction + time.Minute)
	l.Allow("10.0.0.1", "/contests", "GET")
	l.Allow("10.0.0.2", "/contests", "GET")

	l.evictIdle()
	assert.Len(t, l.entries, 2, "only recently seen clients survive eviction")
}

func TestNewLimiter_NilConfigDefaults(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, info := l.Allow("10.0.0.7", "/contests", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}
