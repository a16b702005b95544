// Package observe provides a keyed observer registry.
// It is the change-notification mechanism the observable collaborators are
// built on: observers register under a string key and are invoked
// synchronously, in registration order, each time the owner notifies that
// key.
package observe

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/eddytalvala/KDEAudioPlayer/ports"
)

// Observer is called with the notified key and the payload the owner passed
// to Notify.
type Observer func(key string, payload any)

// Registry is a thread-safe keyed observer registry.
//
// Delivery is synchronous on the goroutine calling Notify. Slow observers
// therefore block the notifying goroutine; the registry never spawns
// goroutines of its own.
type Registry struct {
	logger *slog.Logger

	// mu protects observers
	mu sync.RWMutex

	// observers maps keys to their registrations
	observers map[string][]registration
}

// a registration represents a single keyed observation.
type registration struct {
	id ports.ObservationID
	fn Observer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		observers: make(map[string][]registration),
	}
}

// SetLogger sets the logger for this registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Observe registers fn under key and returns the registration's ID.
// The same function can be registered multiple times with distinct IDs.
func (r *Registry) Observe(key string, fn Observer) ports.ObservationID {
	if fn == nil {
		panic("observer cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := ports.ObservationID(uuid.NewString())
	r.observers[key] = append(r.observers[key], registration{id: id, fn: fn})

	return id
}

// Unobserve removes the registration with the given ID.
// Unknown IDs are a no-op.
func (r *Registry) Unobserve(id ports.ObservationID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, regs := range r.observers {
		for i, reg := range regs {
			if reg.id == id {
				r.observers[key] = append(regs[:i:i], regs[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every observer registered under key, in registration order.
// The observer list is copied before invocation so observers may register or
// remove observations from within their callback without deadlocking.
func (r *Registry) Notify(key string, payload any) {
	r.mu.RLock()
	regs := make([]registration, len(r.observers[key]))
	copy(regs, r.observers[key])
	logger := r.logger
	r.mu.RUnlock()

	if logger != nil && len(regs) > 0 {
		logger.Debug("notifying observers",
			slog.String("key", key),
			slog.Int("observers", len(regs)))
	}

	for _, reg := range regs {
		reg.fn(key, payload)
	}
}

// Count returns the number of registrations under key.
func (r *Registry) Count(key string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.observers[key])
}

// TotalCount returns the number of registrations across all keys.
func (r *Registry) TotalCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, regs := range r.observers {
		count += len(regs)
	}
	return count
}
