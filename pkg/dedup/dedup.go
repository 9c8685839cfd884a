package dedup

import (
	"sync"
	"time"
)

// Window remembers keys for a fixed time. A key seen again before it expires
// is reported as a duplicate.
type Window struct {
	mu   sync.Mutex
	ttl  time.Duration
	max  int
	now  func() time.Time
	seen map[string]time.Time
}

func New(ttl time.Duration, max int) *Window {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if max <= 0 {
		max = 1000
	}
	return &Window{ttl: ttl, max: max, now: time.Now, seen: make(map[string]time.Time)}
}

// First reports whether key is new (or expired) and records it.
// The empty key is never deduplicated.
func (w *Window) First(key string) bool {
	if key == "" {
		return true
	}
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()
	if exp, ok := w.seen[key]; ok && now.Before(exp) {
		return false
	}
	w.seen[key] = now.Add(w.ttl)
	if len(w.seen) > w.max {
		w.evict(now)
	}
	return true
}

// Len is the number of keys currently held.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.seen)
}

// evict drops expired keys, then the oldest ones until the window fits max.
func (w *Window) evict(now time.Time) {
	for k, exp := range w.seen {
		if !now.Before(exp) {
			delete(w.seen, k)
		}
	}
	for len(w.seen) > w.max {
		var oldest string
		var oldestExp time.Time
		for k, exp := range w.seen {
			if oldest == "" || exp.Before(oldestExp) {
				oldest, oldestExp = k, exp
			}
		}
		delete(w.seen, oldest)
	}
}
