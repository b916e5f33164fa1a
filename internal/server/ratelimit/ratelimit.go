// Package ratelimit enforces per-client request budgets. The expensive
// endpoints here are the generative ones, which burn shared model quota, so
// budgets are keyed per client, per endpoint and per method: one client
// draining its /analyze budget must not touch its own /contests reads, let
// alone anyone else's.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket: capacity tokens up front, refilled continuously
// at rate tokens per second. Fractional tokens accumulate between requests.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	rate     float64
	tokens   float64
	stamp    time.Time

	now func() time.Time
}

func newBucket(capacity int, rate float64, now func() time.Time) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		stamp:    now(),
		now:      now,
	}
}

// refillLocked credits tokens for the time elapsed since the last touch.
func (b *bucket) refillLocked() {
	now := b.now()
	b.tokens += now.Sub(b.stamp).Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.stamp = now
}

// take consumes one token if available and reports the remaining budget and
// the instant the bucket is full again.
func (b *bucket) take() (ok bool, remaining int, fullAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillLocked()
	if b.tokens >= 1 {
		b.tokens--
		ok = true
	}

	remaining = int(b.tokens)
	fullAt = b.stamp
	if b.tokens < b.capacity {
		deficit := (b.capacity - b.tokens) / b.rate
		fullAt = b.stamp.Add(time.Duration(deficit * float64(time.Second)))
	}
	return ok, remaining, fullAt
}

// Info describes the budget state a decision was made under; the server
// surfaces it as X-RateLimit-* headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds the limiter configuration assembled by LoadConfig.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// entry pairs a bucket with its last use so idle clients can be evicted.
type entry struct {
	bucket   *bucket
	lastSeen time.Time
}

// Limiter tracks one bucket per client+endpoint+method key.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	config  *Config

	now func() time.Time

	janitor *time.Ticker
	done    chan struct{}
}

// idleEviction is how long an untouched bucket survives before the janitor
// drops it.
const idleEviction = time.Hour

// NewLimiter builds a limiter. A nil config gets permissive defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		entries: make(map[string]*entry),
		config:  config,
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.janitor = time.NewTicker(config.CleanupInterval)
		l.done = make(chan struct{})
		go l.runJanitor()
	}
	return l
}

// Allow decides whether one request from clientID against endpoint+method
// fits the budget, and reports the budget state either way.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	cfg := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if cfg == nil {
		cfg = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if cfg.Limit <= 0 {
		// Unlimited route, e.g. /health.
		return true, Info{Allowed: true}
	}

	b := l.lookup(clientID+":"+endpoint+":"+method, cfg)
	ok, remaining, fullAt := b.take()

	info := Info{
		Allowed:   ok,
		Limit:     cfg.Limit,
		Remaining: remaining,
		ResetTime: fullAt,
	}
	if !ok {
		if wait := fullAt.Sub(l.now()); wait > 0 {
			info.RetryAfter = wait
		}
	}
	return ok, info
}

// lookup finds or creates the bucket for a key and stamps its last use.
func (l *Limiter) lookup(key string, cfg *EndpointConfig) *bucket {
	capacity := cfg.Burst
	if capacity <= 0 {
		capacity = cfg.Limit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		rate := float64(cfg.Limit) / cfg.Window.Seconds()
		e = &entry{bucket: newBucket(capacity, rate, l.now)}
		l.entries[key] = e
	}
	e.lastSeen = l.now()
	return e.bucket
}

func (l *Limiter) runJanitor() {
	for {
		select {
		case <-l.janitor.C:
			l.evictIdle()
		case <-l.done:
			return
		}
	}
}

// evictIdle drops buckets that have not been touched within idleEviction.
func (l *Limiter) evictIdle() {
	cutoff := l.now().Add(-idleEviction)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

// Stop shuts down the janitor goroutine.
func (l *Limiter) Stop() {
	if l.janitor != nil {
		l.janitor.Stop()
	}
	if l.done != nil {
		close(l.done)
	}
}
