package workflow

import (
	"sync"

	"go.uber.org/atomic"
)

// Blackboard is the shared binding store a workflow runs against. Actions
// read their inputs from named bindings and write their result to an output
// binding. Every write bumps the binding's version so rerunnable actions can
// detect fresh inputs.
// Safe for concurrent use.
type Blackboard struct {
	values   map[string]any
	versions map[string]*atomic.Int64
	mtx      sync.RWMutex
}

// NewBlackboard returns an empty Blackboard.
func NewBlackboard() *Blackboard {
	return &Blackboard{
		values:   make(map[string]any),
		versions: make(map[string]*atomic.Int64),
	}
}

// Set writes a binding and bumps its version.
func (b *Blackboard) Set(name string, value any) {
	b.mtx.Lock()
	b.values[name] = value
	counter, ok := b.versions[name]
	if !ok {
		counter = atomic.NewInt64(0)
		b.versions[name] = counter
	}
	b.mtx.Unlock()
	counter.Inc()
}

// Get returns the value of a binding.
func (b *Blackboard) Get(name string) (any, bool) {
	b.mtx.RLock()
	v, ok := b.values[name]
	b.mtx.RUnlock()
	return v, ok
}

// Version returns the current version of a binding, zero when absent.
func (b *Blackboard) Version(name string) int64 {
	b.mtx.RLock()
	counter, ok := b.versions[name]
	b.mtx.RUnlock()
	if !ok {
		return 0
	}
	return counter.Load()
}

// Has reports whether every named binding is present.
func (b *Blackboard) Has(names ...string) bool {
	b.mtx.RLock()
	defer b.mtx.RUnlock()
	for _, name := range names {
		if _, ok := b.values[name]; !ok {
			return false
		}
	}
	return true
}

// Bindings returns a snapshot of all bindings.
func (b *Blackboard) Bindings() map[string]any {
	b.mtx.RLock()
	defer b.mtx.RUnlock()
	snapshot := make(map[string]any, len(b.values))
	for k, v := range b.values {
		snapshot[k] = v
	}
	return snapshot
}

// Get returns the value of a binding cast to T.
func Get[T any](b *Blackboard, name string) (T, bool) {
	var zero T
	v, ok := b.Get(name)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
