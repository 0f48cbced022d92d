// Package registry provides a reference-counted name registry for shared
// components. A single mutex guards the map; each key carries an explicit
// reference count and is removed only when the count returns to zero.
package registry

import (
	"errors"
	"sync"
)

// ErrNotRegistered is returned when unregistering a name with no entry.
var ErrNotRegistered = errors.New("registry: not registered")

type entry[T any] struct {
	value T
	refs  int
}

// Registry maps names to reference-counted values. The zero value is not
// usable; call New.
type Registry[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
}

// New returns an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]*entry[T])}
}

// Register adds value under name, or increments the count when name already
// exists (the original value is kept). It reports whether this was the first
// registration for name.
func (r *Registry[T]) Register(name string, value T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		e.refs++
		return false
	}
	r.entries[name] = &entry[T]{value: value, refs: 1}
	return true
}

// Unregister decrements name's reference count and removes the entry when it
// reaches zero. Unregistering an absent name returns ErrNotRegistered.
func (r *Registry[T]) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	if !ok {
		return ErrNotRegistered
	}
	e.refs--
	if e.refs <= 0 {
		delete(r.entries, name)
	}
	return nil
}

// Lookup returns the value registered under name.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		return e.value, true
	}
	var zero T
	return zero, false
}

// Names returns the currently registered names, in no particular order.
func (r *Registry[T]) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}
