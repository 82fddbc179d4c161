package store

import "github.com/stein197/rehook/state"

// Field binds one key of the record. A Field carries no state of its
// own; it is a stable handle a consumer can keep for its whole mounted
// lifetime and pass into dependency-tracked contexts.
type Field struct {
	store *Store
	key   string
}

// Key returns the bound key.
func (f *Field) Key() string {
	if f == nil {
		return ""
	}
	return f.key
}

// Get returns the live value of the bound field.
func (f *Field) Get() any {
	if f == nil || f.store == nil {
		return nil
	}
	return f.store.get(f.key)
}

// Set writes the field and notifies watchers of this key.
// It reports false when the write was suppressed as unchanged.
func (f *Field) Set(value any) bool {
	if f == nil || f.store == nil {
		return false
	}
	return f.store.setKey(f.key, value)
}

// Update rewrites the field using fn, then runs the same algorithm as Set.
func (f *Field) Update(fn func(any) any) bool {
	if f == nil || f.store == nil {
		return false
	}
	return f.store.updateKey(f.key, fn)
}

// Watch registers fn to receive every accepted write to this key.
// Writes to other keys never reach fn. The returned cancel removes the
// registration and is safe to call twice.
func (f *Field) Watch(fn func(any)) func() {
	return f.WatchWithScheduler(nil, fn)
}

// WatchWithScheduler registers fn and dispatches it through scheduler.
// A nil scheduler runs fn synchronously in the writer's goroutine.
func (f *Field) WatchWithScheduler(scheduler state.Scheduler, fn func(any)) func() {
	if f == nil || f.store == nil || fn == nil {
		return func() {}
	}
	return f.store.watch(registration{
		key:       f.key,
		notify:    fn,
		scheduler: scheduler,
	})
}

// Record binds the entire record. Whole-record watchers fire on every
// write because a record-level write cannot know which keys changed.
type Record struct {
	store *Store
}

// Get returns a snapshot copy of the record.
func (r *Record) Get() map[string]any {
	if r == nil || r.store == nil {
		return nil
	}
	return r.store.Snapshot()
}

// Set replaces every field of the record and notifies all watchers.
// next must carry exactly the store's key set; anything else panics.
func (r *Record) Set(next map[string]any) bool {
	if r == nil || r.store == nil {
		return false
	}
	return r.store.replace(next)
}

// Update rewrites the record using fn, which receives a snapshot copy.
func (r *Record) Update(fn func(map[string]any) map[string]any) bool {
	if r == nil || r.store == nil || fn == nil {
		return false
	}
	return r.store.replace(fn(r.store.Snapshot()))
}

// Watch registers fn to fire on every write to any key.
func (r *Record) Watch(fn func()) func() {
	return r.WatchWithScheduler(nil, fn)
}

// WatchWithScheduler registers fn and dispatches it through scheduler.
func (r *Record) WatchWithScheduler(scheduler state.Scheduler, fn func()) func() {
	if r == nil || r.store == nil || fn == nil {
		return func() {}
	}
	return r.store.watch(registration{
		all:       true,
		force:     fn,
		scheduler: scheduler,
	})
}
