package http

import (
	"sync"
	"time"
)

const (
	idleClientThreshold = 1 * time.Hour
	sweepInterval       = 30 * time.Minute
)

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter allows up to capacity requests per client within each window.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	clients  map[string]*bucket
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := newRateLimiter(capacity, window, time.Now)
	go rl.sweepLoop()
	return rl
}

func newRateLimiter(capacity int, window time.Duration, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		capacity: capacity,
		window:   window,
		clients:  make(map[string]*bucket),
		now:      now,
		done:     make(chan struct{}),
	}
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.done:
			return
		}
	}
}

// sweep drops clients that have not been refilled for idleClientThreshold.
func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, b := range r.clients {
		if now.Sub(b.lastRefill) > idleClientThreshold {
			delete(r.clients, client)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Allow consumes one token for client and reports whether the request may
// proceed. When it may not, the returned duration is the time until the
// client's bucket refills.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, exists := r.clients[client]

	if !exists {
		r.clients[client] = &bucket{
			tokens:     r.capacity - 1,
			lastRefill: now,
		}
		return r.capacity > 0, 0
	}

	if now.Sub(b.lastRefill) >= r.window {
		b.tokens = r.capacity
		b.lastRefill = now
	}

	if b.tokens <= 0 {
		return false, b.lastRefill.Add(r.window).Sub(now)
	}

	b.tokens--
	return true, 0
}
