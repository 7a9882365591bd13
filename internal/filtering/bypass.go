// Package filtering holds the shared pieces of the page shield components.
package filtering

import (
	"strings"
	"sync"
	"time"
)

// DefaultBypassTTL bounds how long an unused one-shot bypass stays armed.
const DefaultBypassTTL = time.Minute

// BypassRegistry tracks request URLs the user let through once.
// Entries are consumed by the first matching request and expire after ttl.
type BypassRegistry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	allowed map[string]time.Time // url -> expiry
}

// NewBypassRegistry creates an empty registry. A non-positive ttl uses DefaultBypassTTL.
func NewBypassRegistry(ttl time.Duration) *BypassRegistry {
	if ttl <= 0 {
		ttl = DefaultBypassTTL
	}
	return &BypassRegistry{
		ttl:     ttl,
		now:     time.Now,
		allowed: make(map[string]time.Time),
	}
}

// SetClock replaces the registry's time source.
func (r *BypassRegistry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

func bypassKey(rawURL string) string {
	key := strings.TrimSpace(rawURL)
	if i := strings.IndexByte(key, '#'); i >= 0 {
		key = key[:i]
	}
	return key
}

// AllowOnce arms a bypass for the next request to rawURL.
func (r *BypassRegistry) AllowOnce(rawURL string) {
	key := bypassKey(rawURL)
	if key == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.allowed[key] = r.now().Add(r.ttl)
}

// Consume reports whether rawURL had an armed bypass and disarms it.
func (r *BypassRegistry) Consume(rawURL string) bool {
	key := bypassKey(rawURL)

	r.mu.Lock()
	defer r.mu.Unlock()

	expiry, ok := r.allowed[key]
	if !ok {
		return false
	}
	delete(r.allowed, key)
	return r.now().Before(expiry)
}

// Clear disarms every bypass.
func (r *BypassRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allowed = make(map[string]time.Time)
}

// Count returns the number of armed, unexpired bypasses.
func (r *BypassRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for key, expiry := range r.allowed {
		if now.Before(expiry) {
			n++
		} else {
			delete(r.allowed, key)
		}
	}
	return n
}
