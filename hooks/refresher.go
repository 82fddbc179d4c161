package hooks

import "github.com/stein197/rehook/state"

// Refresher forces a re-render with no associated data: each Trigger
// bumps a revision counter and wakes every watcher.
type Refresher struct {
	rev *state.Cell[uint64]
}

// NewRefresher creates a refresher at revision zero.
func NewRefresher() *Refresher {
	cell := state.NewCell[uint64](0)
	cell.SetEqualFunc(state.EqualComparable[uint64])
	return &Refresher{rev: cell}
}

// Trigger bumps the revision and notifies watchers.
func (r *Refresher) Trigger() {
	if r == nil {
		return
	}
	r.rev.Update(func(v uint64) uint64 { return v + 1 })
}

// Revision returns the current revision.
func (r *Refresher) Revision() uint64 {
	if r == nil {
		return 0
	}
	return r.rev.Get()
}

// Watch registers fn to fire on every trigger.
func (r *Refresher) Watch(fn func()) func() {
	if r == nil {
		return func() {}
	}
	return r.rev.WatchChange(fn)
}

// WatchWithScheduler registers fn and dispatches it through scheduler.
func (r *Refresher) WatchWithScheduler(scheduler state.Scheduler, fn func()) func() {
	if r == nil || fn == nil {
		return func() {}
	}
	return r.rev.WatchWithScheduler(scheduler, func(uint64) { fn() })
}
