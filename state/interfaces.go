package state

// Readable exposes read-only reactive state.
type Readable[T any] interface {
	Get() T
	Watch(fn func(T)) func()
	WatchWithScheduler(scheduler Scheduler, fn func(T)) func()
}

// Writable exposes read/write reactive state.
type Writable[T any] interface {
	Readable[T]
	Set(value T) bool
	Update(fn func(T) T) bool
}
