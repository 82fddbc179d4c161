package state

import "sync"

// Scope collects teardown callbacks for a consumer's mounted lifetime.
// A consumer adds every registration cancel on mount and clears the
// scope on unmount so no registration outlives its owner.
type Scope struct {
	mu      sync.Mutex
	cancels []func()
	sched   Scheduler
}

// NewScope creates a scope with a default scheduler.
func NewScope(scheduler Scheduler) *Scope {
	return &Scope{sched: scheduler}
}

// SetScheduler updates the default scheduler.
func (s *Scope) SetScheduler(scheduler Scheduler) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
}

// Scheduler returns the default scheduler.
func (s *Scope) Scheduler() Scheduler {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	scheduler := s.sched
	s.mu.Unlock()
	return scheduler
}

// Add tracks a teardown callback.
func (s *Scope) Add(cancel func()) {
	if s == nil || cancel == nil {
		return
	}
	s.mu.Lock()
	s.cancels = append(s.cancels, cancel)
	s.mu.Unlock()
}

// WatchCell registers fn on cell through the default scheduler and
// tracks the cancel.
func WatchCell[T any](s *Scope, cell *Cell[T], fn func(T)) {
	if s == nil || cell == nil || fn == nil {
		return
	}
	s.Add(cell.WatchWithScheduler(s.Scheduler(), fn))
}

// Clear runs and drops all tracked teardowns. Clearing twice is a no-op.
func (s *Scope) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	cancels := s.cancels
	s.cancels = nil
	s.mu.Unlock()
	for _, cancel := range cancels {
		if cancel != nil {
			cancel()
		}
	}
}
