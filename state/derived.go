package state

import "sync"

// Watchable emits change notifications without exposing the value type.
type Watchable interface {
	// WatchChange registers a listener called after every accepted write.
	WatchChange(fn func()) func()
}

// Derived recomputes its value from other reactive sources.
type Derived[T any] struct {
	cell      *Cell[T]
	compute   func() T
	mu        sync.Mutex
	cancels   []func()
	scheduler Scheduler
}

// NewDerived creates a value recomputed whenever a dependency changes.
func NewDerived[T any](compute func() T, deps ...Watchable) *Derived[T] {
	return NewDerivedWithScheduler(nil, compute, deps...)
}

// NewDerivedWithScheduler creates a derived value and schedules recomputes.
// A nil scheduler recomputes synchronously.
func NewDerivedWithScheduler[T any](scheduler Scheduler, compute func() T, deps ...Watchable) *Derived[T] {
	if compute == nil {
		compute = func() T {
			var zero T
			return zero
		}
	}
	d := &Derived[T]{
		cell:      NewCell(compute()),
		compute:   compute,
		scheduler: scheduler,
	}
	for _, dep := range deps {
		if dep == nil {
			continue
		}
		cancel := dep.WatchChange(d.enqueueRecompute)
		if cancel != nil {
			d.cancels = append(d.cancels, cancel)
		}
	}
	return d
}

// SetEqualFunc replaces the equality policy used to suppress redundant writes.
func (d *Derived[T]) SetEqualFunc(fn EqualFunc[T]) {
	if d == nil {
		return
	}
	d.cell.SetEqualFunc(fn)
}

// Get returns the current derived value.
func (d *Derived[T]) Get() T {
	if d == nil {
		var zero T
		return zero
	}
	return d.cell.Get()
}

// Watch registers fn to receive every accepted recompute.
func (d *Derived[T]) Watch(fn func(T)) func() {
	if d == nil {
		return func() {}
	}
	return d.cell.Watch(fn)
}

// WatchWithScheduler registers fn and dispatches it through scheduler.
func (d *Derived[T]) WatchWithScheduler(scheduler Scheduler, fn func(T)) func() {
	if d == nil {
		return func() {}
	}
	return d.cell.WatchWithScheduler(scheduler, fn)
}

// WatchChange registers a value-free change listener.
func (d *Derived[T]) WatchChange(fn func()) func() {
	if d == nil {
		return func() {}
	}
	return d.cell.WatchChange(fn)
}

// Stop detaches the derived value from its dependencies.
func (d *Derived[T]) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	cancels := d.cancels
	d.cancels = nil
	d.mu.Unlock()
	for _, cancel := range cancels {
		if cancel != nil {
			cancel()
		}
	}
}

func (d *Derived[T]) recompute() {
	if d == nil {
		return
	}
	d.cell.Set(d.compute())
}

func (d *Derived[T]) enqueueRecompute() {
	if d == nil {
		return
	}
	if d.scheduler == nil {
		d.recompute()
		return
	}
	d.scheduler.Schedule(d.recompute)
}
