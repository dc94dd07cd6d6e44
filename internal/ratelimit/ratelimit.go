// Package ratelimit implements a fixed-window request limiter keyed by an
// arbitrary string, typically the client IP.
package ratelimit

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

type window struct {
	count   int
	startAt time.Time
}

// Limiter counts requests per key within a fixed window. When the window
// elapses the count resets; there is no carry-over between windows.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*window
	limit   int
	period  time.Duration
	done    chan struct{}
}

func NewLimiter(limit int, period time.Duration) *Limiter {
	l := &Limiter{
		entries: make(map[string]*window),
		limit:   limit,
		period:  period,
		done:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow records a request for key and reports whether it is within the
// quota. When it is not, retryAfter says how long until the window resets.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.entries[key]
	if !ok || now.Sub(w.startAt) >= l.period {
		l.entries[key] = &window{count: 1, startAt: now}
		return true, 0
	}

	if w.count >= l.limit {
		return false, w.startAt.Add(l.period).Sub(now)
	}

	w.count++
	return true, 0
}

func (l *Limiter) Close() {
	close(l.done)
}

// sweep drops windows that ended long ago so idle keys do not accumulate.
func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for key, w := range l.entries {
				if now.Sub(w.startAt) >= 2*l.period {
					delete(l.entries, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// ClientIP extracts the caller address, preferring proxy headers over the
// raw remote address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i]
		}
		if addr[i] == ']' {
			break
		}
	}
	return addr
}
