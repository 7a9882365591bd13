package countermeasure

import (
	"fmt"
	"sync"

	"github.com/bnema/adshield/internal/domain/entity"
)

// Registry is an ordered set of stubs keyed by global name. Registering a
// name twice replaces the earlier stub in place.
type Registry struct {
	mu    sync.RWMutex
	order []string
	stubs map[string]entity.Stub
}

// NewRegistry creates a registry holding stubs. Invalid stubs are rejected.
func NewRegistry(stubs ...entity.Stub) (*Registry, error) {
	r := &Registry{stubs: make(map[string]entity.Stub, len(stubs))}
	for _, s := range stubs {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry returns a registry of DefaultCatalog.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultCatalog()...)
	if err != nil {
		panic(fmt.Sprintf("countermeasure: invalid built-in catalog: %v", err))
	}
	return r
}

// Register adds or replaces a stub.
func (r *Registry) Register(s entity.Stub) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid stub: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stubs[s.Name]; !ok {
		r.order = append(r.order, s.Name)
	}
	r.stubs[s.Name] = s
	return nil
}

// Remove drops a stub and reports whether it existed.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stubs[name]; !ok {
		return false
	}
	delete(r.stubs, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Lookup returns the stub registered under name.
func (r *Registry) Lookup(name string) (entity.Stub, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stubs[name]
	return s, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered stubs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Stubs returns the stubs applying to site in registration order.
func (r *Registry) Stubs(site entity.SiteContext) []entity.Stub {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Stub, 0, len(r.order))
	for _, name := range r.order {
		if s := r.stubs[name]; s.AppliesTo(site) {
			out = append(out, s)
		}
	}
	return out
}
