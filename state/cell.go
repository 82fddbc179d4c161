// Package state provides host-agnostic reactive primitives: value cells,
// derived values, schedulers, and teardown scopes.
package state

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

type watcher[T any] struct {
	fn        func(T)
	scheduler Scheduler
}

// Cell holds a mutable value and notifies watchers when it changes.
// Watchers receive the new value so they can refresh a local copy
// before their owner re-renders.
type Cell[T any] struct {
	mu       sync.Mutex
	value    T
	watchers map[string]watcher[T]
	equal    EqualFunc[T]
}

// NewCell creates a cell with an initial value.
// Redundant writes are suppressed by reference equality; install a
// different policy with SetEqualFunc.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// SetEqualFunc replaces the equality policy used to suppress redundant writes.
// A nil fn restores the default reference equality.
func (c *Cell[T]) SetEqualFunc(fn EqualFunc[T]) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.equal = fn
	c.mu.Unlock()
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	if c == nil {
		var zero T
		return zero
	}
	c.mu.Lock()
	value := c.value
	c.mu.Unlock()
	return value
}

// Set writes a new value and notifies watchers.
// It reports false when the write was suppressed as unchanged.
func (c *Cell[T]) Set(value T) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	if c.sameLocked(c.value, value) {
		c.mu.Unlock()
		return false
	}
	c.value = value
	watchers := c.copyWatchersLocked()
	c.mu.Unlock()

	notifyWatchers(watchers, value)
	return true
}

// Update rewrites the value using fn.
// fn runs outside the cell lock; Update is not atomic across goroutines.
func (c *Cell[T]) Update(fn func(T) T) bool {
	if c == nil || fn == nil {
		return false
	}
	return c.Set(fn(c.Get()))
}

// Watch registers fn to receive every accepted write.
// The returned cancel removes the registration and is safe to call twice.
func (c *Cell[T]) Watch(fn func(T)) func() {
	return c.WatchWithScheduler(nil, fn)
}

// WatchWithScheduler registers fn and dispatches it through scheduler.
// A nil scheduler runs fn synchronously in the writer's goroutine.
func (c *Cell[T]) WatchWithScheduler(scheduler Scheduler, fn func(T)) func() {
	if c == nil || fn == nil {
		return func() {}
	}
	c.mu.Lock()
	if c.watchers == nil {
		c.watchers = make(map[string]watcher[T])
	}
	id := ulid.Make().String()
	c.watchers[id] = watcher[T]{fn: fn, scheduler: scheduler}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.watchers, id)
			c.mu.Unlock()
		})
	}
}

// WatchChange registers a value-free change listener, satisfying Watchable.
func (c *Cell[T]) WatchChange(fn func()) func() {
	if c == nil || fn == nil {
		return func() {}
	}
	return c.Watch(func(T) { fn() })
}

func (c *Cell[T]) sameLocked(a, b T) bool {
	if c.equal != nil {
		return c.equal(a, b)
	}
	return Same(a, b)
}

func (c *Cell[T]) copyWatchersLocked() []watcher[T] {
	if len(c.watchers) == 0 {
		return nil
	}
	watchers := make([]watcher[T], 0, len(c.watchers))
	for _, w := range c.watchers {
		watchers = append(watchers, w)
	}
	return watchers
}

func notifyWatchers[T any](watchers []watcher[T], value T) {
	for _, w := range watchers {
		if w.fn == nil {
			continue
		}
		if w.scheduler == nil {
			w.fn(value)
			continue
		}
		fn, v := w.fn, value
		w.scheduler.Schedule(func() { fn(v) })
	}
}
