package hooks

import (
	"sync"

	"github.com/stein197/rehook/state"
)

// Previous tracks the value a cell held before its latest write.
// Until the first write, the previous value equals the initial one.
type Previous[T any] struct {
	mu     sync.Mutex
	prev   T
	cur    T
	cancel func()
}

// NewPrevious starts tracking source.
func NewPrevious[T any](source state.Readable[T]) *Previous[T] {
	initial := source.Get()
	p := &Previous[T]{prev: initial, cur: initial}
	p.cancel = source.Watch(func(v T) {
		p.mu.Lock()
		p.prev = p.cur
		p.cur = v
		p.mu.Unlock()
	})
	return p
}

// Get returns the value before the latest write.
func (p *Previous[T]) Get() T {
	if p == nil {
		var zero T
		return zero
	}
	p.mu.Lock()
	prev := p.prev
	p.mu.Unlock()
	return prev
}

// Current returns the latest observed value.
func (p *Previous[T]) Current() T {
	if p == nil {
		var zero T
		return zero
	}
	p.mu.Lock()
	cur := p.cur
	p.mu.Unlock()
	return cur
}

// Stop detaches from the source. Stopping twice is a no-op.
func (p *Previous[T]) Stop() {
	if p == nil || p.cancel == nil {
		return
	}
	p.cancel()
}
