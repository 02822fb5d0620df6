// Package ratelimit bounds the number of requests accepted from one
// client address within a time window.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// window tracks one client address. The counter resets lazily when the
// current window has elapsed.
type window struct {
	count     int
	lastReset time.Time
}

// Memory is an in-process per-address limiter. Its state is process-wide
// and advisory only under multi-process deployment.
type Memory struct {
	limit    int
	interval time.Duration

	mu      sync.Mutex
	windows map[string]*window

	// now is the clock used for window arithmetic. Tests override it.
	now func() time.Time
}

// NewMemory creates a limiter allowing limit requests per interval for
// each distinct address.
func NewMemory(limit int, interval time.Duration) *Memory {
	return &Memory{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow reports whether a request from addr fits in the current window
// and counts it when it does.
func (m *Memory) Allow(_ context.Context, addr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[addr]
	if !ok {
		w = &window{lastReset: now}
		m.windows[addr] = w
	}

	if now.Sub(w.lastReset) >= m.interval {
		w.count = 0
		w.lastReset = now
	}

	if w.count >= m.limit {
		return false
	}
	w.count++
	return true
}
