// Package ratelimit caps guest submissions per client IP over a sliding
// window. It is the one piece of cross-request shared state in the
// service and is disabled unless configured on.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks recent submission timestamps per IP.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	seen map[string][]time.Time
}

// New returns a Limiter allowing max hits per IP within window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:    max,
		window: window,
		now:    time.Now,
		seen:   make(map[string][]time.Time),
	}
}

// Allow reports whether ip may submit now and, if so, records the hit.
func (l *Limiter) Allow(ip string) bool {
	if ip == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.seen[ip][:0]
	for _, t := range l.seen[ip] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.max {
		l.seen[ip] = kept
		return false
	}

	l.seen[ip] = append(kept, now)
	return true
}

// Prune drops IPs with no hits inside the window. Callers may run it
// periodically to keep the map from growing unbounded.
func (l *Limiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for ip, hits := range l.seen {
		kept := hits[:0]
		for _, t := range hits {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		if len(kept) == 0 {
			delete(l.seen, ip)
		} else {
			l.seen[ip] = kept
		}
	}
}
