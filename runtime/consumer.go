package runtime

import "github.com/stein197/rehook/state"

// Consumer is a unit that observes shared state while mounted and
// re-renders when the loop asks it to.
type Consumer interface {
	Mount()
	Unmount()
	Render()
}

// Schedulable consumers receive the loop's scheduler when attached, so
// their registrations coalesce into the loop's render passes.
type Schedulable interface {
	SetScheduler(scheduler state.Scheduler)
}

// Func is a Consumer assembled from callbacks. Its scope is cleared on
// unmount, so every registration added during MountFunc dies with the
// consumer.
type Func struct {
	MountFunc  func(scope *state.Scope)
	RenderFunc func()

	scope state.Scope
}

// Scope returns the consumer's registration scope.
func (f *Func) Scope() *state.Scope {
	if f == nil {
		return nil
	}
	return &f.scope
}

// SetScheduler installs the default scheduler for scope registrations.
func (f *Func) SetScheduler(scheduler state.Scheduler) {
	if f == nil {
		return
	}
	f.scope.SetScheduler(scheduler)
}

// Mount runs MountFunc with the consumer's scope.
func (f *Func) Mount() {
	if f == nil || f.MountFunc == nil {
		return
	}
	f.MountFunc(&f.scope)
}

// Unmount clears every registration added while mounted.
func (f *Func) Unmount() {
	if f == nil {
		return
	}
	f.scope.Clear()
}

// Render runs RenderFunc.
func (f *Func) Render() {
	if f == nil || f.RenderFunc == nil {
		return
	}
	f.RenderFunc()
}

// MountAll mounts consumers in order.
func MountAll(consumers ...Consumer) {
	for _, c := range consumers {
		if c != nil {
			c.Mount()
		}
	}
}

// UnmountAll unmounts consumers in reverse order.
func UnmountAll(consumers ...Consumer) {
	for i := len(consumers) - 1; i >= 0; i-- {
		if consumers[i] != nil {
			consumers[i].Unmount()
		}
	}
}
