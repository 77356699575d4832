package security

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/raaihank/redact-sentinel/internal/config"
	"golang.org/x/time/rate"
)

// RateLimiter enforces a per-client request budget to protect the engine
// from a single noisy caller.
type RateLimiter struct {
	config  *config.SecurityConfig
	clients map[string]*clientLimiter
	mu      sync.RWMutex
}

// clientLimiter tracks one client's bucket. lastSeen is unix nanos, updated
// atomically so concurrent Allow calls never write under a read lock.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

func (cl *clientLimiter) touch() {
	cl.lastSeen.Store(time.Now().UnixNano())
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg *config.SecurityConfig) *RateLimiter {
	return &RateLimiter{
		config:  cfg,
		clients: make(map[string]*clientLimiter),
	}
}

// Allow checks if a request from the given client IP is allowed
func (r *RateLimiter) Allow(clientIP string) bool {
	if !r.config.RateLimit.Enabled {
		return true
	}

	return r.getLimiter(clientIP).Allow()
}

// getLimiter gets or creates the limiter for a client IP
func (r *RateLimiter) getLimiter(clientIP string) *rate.Limiter {
	r.mu.RLock()
	cl, exists := r.clients[clientIP]
	r.mu.RUnlock()

	if exists {
		cl.touch()
		return cl.limiter
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if cl, exists := r.clients[clientIP]; exists {
		cl.touch()
		return cl.limiter
	}

	burst := r.config.RateLimit.Burst
	if burst <= 0 {
		burst = r.config.RateLimit.RequestsPerMin
	}

	cl = &clientLimiter{
		limiter: rate.NewLimiter(rate.Limit(float64(r.config.RateLimit.RequestsPerMin)/60.0), burst),
	}
	cl.touch()
	r.clients[clientIP] = cl
	return cl.limiter
}

// CleanupOldClients removes idle client limiters to prevent memory leaks
func (r *RateLimiter) CleanupOldClients() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-time.Hour).UnixNano()
	for ip, cl := range r.clients {
		if cl.lastSeen.Load() < cutoff {
			delete(r.clients, ip)
		}
	}
}

// StartCleanupRoutine starts a background routine to clean up idle clients
func (r *RateLimiter) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			r.CleanupOldClients()
		}
	}()
}
