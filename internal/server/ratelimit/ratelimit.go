// Package ratelimit provides per-client rate limiting backed by golang.org/x/time/rate token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter manages rate limiting for multiple clients, one token bucket per
// client, endpoint and method.
type Limiter struct {
	buckets       map[string]*bucket
	mu            sync.Mutex
	config        *Config
	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

type bucket struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // buckets unused for this long are dropped
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewLimiter creates a new rate limiter with the given configuration.
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
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = time.Hour
	}

	limiter := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	// Start cleanup goroutine if enabled
	if config.Enabled && config.CleanupInterval > 0 {
		limiter.cleanupTicker = time.NewTicker(config.CleanupInterval)
		limiter.cleanupStop = make(chan struct{})
		go limiter.cleanup()
	}

	return limiter
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Returns true if allowed, false if rate limited, along with rate limit information.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Path:   endpoint,
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}

	// Unlimited endpoint (e.g., health check)
	if endpointConfig.Limit <= 0 || endpointConfig.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := time.Now()
	b := l.getBucket(clientID+":"+endpointConfig.Path+":"+method, endpointConfig, now)

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	burst := b.limiter.Burst()
	perSecond := float64(b.limiter.Limit())

	remaining := max(int(tokens), 0)
	resetTime := now
	if missing := float64(burst) - tokens; missing > 0 && perSecond > 0 {
		resetTime = now.Add(time.Duration(missing / perSecond * float64(time.Second)))
	}

	var retryAfter time.Duration
	if !allowed && perSecond > 0 {
		retryAfter = time.Duration((1 - tokens) / perSecond * float64(time.Second))
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      endpointConfig.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

// getBucket gets or creates the bucket for key and records the access.
func (l *Limiter) getBucket(key string, cfg *EndpointConfig, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, exists := l.buckets[key]
	if !exists {
		burst := cfg.Burst
		if burst <= 0 {
			burst = cfg.Limit
		}
		every := rate.Every(cfg.Window / time.Duration(cfg.Limit))
		b = &bucket{limiter: rate.NewLimiter(every, burst)}
		l.buckets[key] = b
	}
	b.lastAccess = now
	return b
}

// cleanup removes old unused buckets to prevent memory leaks.
func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupBuckets(time.Now())
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets removes buckets that have been idle longer than IdleTimeout.
func (l *Limiter) cleanupBuckets(now time.Time) {
	cutoff := now.Add(-l.config.IdleTimeout)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// bucketCount reports how many buckets are currently tracked
func (l *Limiter) bucketCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
