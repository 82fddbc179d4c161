package hooks

import (
	"context"
	"sync"
	"time"

	"github.com/stein197/rehook/state"
)

// Phase is the lifecycle state of a Resource.
type Phase int

const (
	Pending Phase = iota // before the first load
	Loading              // load in progress
	Ready                // data available
	Failed               // last load failed
)

// Resource tracks an asynchronous fetch: loading phase, data, and
// error live in cells so consumers re-render as the fetch progresses.
// It also serves as the loader for external resources (files, HTTP
// assets), which are just fetch functions to it.
type Resource[T any] struct {
	fetch func(context.Context) (T, error)
	phase *state.Cell[Phase]
	data  *state.Cell[T]
	err   *state.Cell[error]

	staleFor   time.Duration
	retries    int
	retryDelay time.Duration
	onReady    func(T)
	onFail     func(error)

	mu         sync.Mutex
	lastLoad   time.Time
	generation uint64
}

// NewResource creates a resource around fetch. Nothing is loaded until
// Load or Reload is called.
func NewResource[T any](fetch func(context.Context) (T, error)) *Resource[T] {
	phase := state.NewCell(Pending)
	phase.SetEqualFunc(state.EqualComparable[Phase])
	return &Resource[T]{
		fetch: fetch,
		phase: phase,
		data:  state.NewCell(*new(T)),
		err:   state.NewCell[error](nil),
	}
}

// StaleFor sets how long a successful load stays fresh. Within that
// window Load is a no-op; Reload always fetches.
func (r *Resource[T]) StaleFor(d time.Duration) *Resource[T] {
	r.mu.Lock()
	r.staleFor = d
	r.mu.Unlock()
	return r
}

// RetryOnError retries a failing fetch count times, waiting delay
// between attempts.
func (r *Resource[T]) RetryOnError(count int, delay time.Duration) *Resource[T] {
	r.mu.Lock()
	r.retries = count
	r.retryDelay = delay
	r.mu.Unlock()
	return r
}

// OnReady registers a callback for successful loads.
func (r *Resource[T]) OnReady(fn func(T)) *Resource[T] {
	r.mu.Lock()
	r.onReady = fn
	r.mu.Unlock()
	return r
}

// OnFail registers a callback for failed loads.
func (r *Resource[T]) OnFail(fn func(error)) *Resource[T] {
	r.mu.Lock()
	r.onFail = fn
	r.mu.Unlock()
	return r
}

// Phase returns the current lifecycle phase.
func (r *Resource[T]) Phase() Phase {
	if r == nil {
		return Pending
	}
	return r.phase.Get()
}

// IsLoading reports whether no data is available yet.
func (r *Resource[T]) IsLoading() bool {
	p := r.Phase()
	return p == Pending || p == Loading
}

// Data returns the last successfully loaded value.
func (r *Resource[T]) Data() T {
	if r == nil {
		var zero T
		return zero
	}
	return r.data.Get()
}

// DataOr returns the loaded value, or fallback while not Ready.
func (r *Resource[T]) DataOr(fallback T) T {
	if r == nil || r.Phase() != Ready {
		return fallback
	}
	return r.data.Get()
}

// Err returns the error of the last failed load, if any.
func (r *Resource[T]) Err() error {
	if r == nil {
		return nil
	}
	return r.err.Get()
}

// WatchPhase registers fn to fire on every phase transition.
func (r *Resource[T]) WatchPhase(fn func(Phase)) func() {
	if r == nil {
		return func() {}
	}
	return r.phase.Watch(fn)
}

// WatchData registers fn to fire when loaded data changes.
func (r *Resource[T]) WatchData(fn func(T)) func() {
	if r == nil {
		return func() {}
	}
	return r.data.Watch(fn)
}

// Load fetches unless fresh data is already available.
func (r *Resource[T]) Load(ctx context.Context) {
	if r == nil {
		return
	}
	r.mu.Lock()
	fresh := r.phase.Get() == Ready && r.staleFor > 0 && time.Since(r.lastLoad) < r.staleFor
	r.mu.Unlock()
	if fresh {
		return
	}
	r.Reload(ctx)
}

// Reload always fetches. A reload started later supersedes one started
// earlier: the superseded completion is discarded.
func (r *Resource[T]) Reload(ctx context.Context) {
	if r == nil || r.fetch == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	r.mu.Lock()
	r.generation++
	gen := r.generation
	retries := r.retries
	retryDelay := r.retryDelay
	r.mu.Unlock()

	r.phase.Set(Loading)
	r.err.Set(nil)

	go r.run(ctx, gen, retries, retryDelay)
}

func (r *Resource[T]) run(ctx context.Context, gen uint64, retries int, retryDelay time.Duration) {
	var result T
	var err error

	attempts := 1 + retries
	for i := 0; i < attempts; i++ {
		if i > 0 && retryDelay > 0 {
			timer := time.NewTimer(retryDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
		if r.stale(gen) || ctx.Err() != nil {
			return
		}
		result, err = r.fetch(ctx)
		if err == nil {
			break
		}
	}

	r.mu.Lock()
	if r.generation != gen {
		r.mu.Unlock()
		return
	}
	r.lastLoad = time.Now()
	onReady := r.onReady
	onFail := r.onFail
	r.mu.Unlock()

	if err != nil {
		r.err.Set(err)
		r.phase.Set(Failed)
		if onFail != nil {
			onFail(err)
		}
		return
	}
	r.data.Set(result)
	r.phase.Set(Ready)
	if onReady != nil {
		onReady(result)
	}
}

// Invalidate marks the current data as stale so the next Load fetches.
func (r *Resource[T]) Invalidate() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.lastLoad = time.Time{}
	r.mu.Unlock()
}

// Mutate optimistically rewrites the local data without fetching.
func (r *Resource[T]) Mutate(fn func(T) T) {
	if r == nil || fn == nil {
		return
	}
	r.data.Update(fn)
}

func (r *Resource[T]) stale(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation != gen
}
