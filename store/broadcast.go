package store

import (
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/stein197/rehook/state"
)

// Broadcast is the unscoped variant of Store: every attached dispatcher
// receives every update, with no key filtering and no equality
// suppression. Updates are shallow merges of a partial record into the
// current one.
type Broadcast struct {
	mu          sync.Mutex
	values      map[string]any
	dispatchers map[string]dispatcher
	logger      *zap.Logger
}

type dispatcher struct {
	fn        func(map[string]any)
	scheduler state.Scheduler
}

// NewBroadcast creates a broadcast over a copy of initial. As with
// Store, the key set of initial is frozen.
func NewBroadcast(initial map[string]any, opts ...Option) *Broadcast {
	cfg := newConfig(opts)
	values := make(map[string]any, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &Broadcast{
		values:      values,
		dispatchers: make(map[string]dispatcher),
		logger:      cfg.logger,
	}
}

// State returns a snapshot copy of the current record.
func (b *Broadcast) State() map[string]any {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	snapshot := make(map[string]any, len(b.values))
	for k, v := range b.values {
		snapshot[k] = v
	}
	return snapshot
}

// Attach registers fn to receive every merged update. The returned
// cancel removes the registration and is safe to call twice.
func (b *Broadcast) Attach(fn func(map[string]any)) func() {
	return b.AttachWithScheduler(nil, fn)
}

// AttachWithScheduler registers fn and dispatches it through scheduler.
func (b *Broadcast) AttachWithScheduler(scheduler state.Scheduler, fn func(map[string]any)) func() {
	if b == nil || fn == nil {
		return func() {}
	}
	id := ulid.Make().String()
	b.mu.Lock()
	b.dispatchers[id] = dispatcher{fn: fn, scheduler: scheduler}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.dispatchers, id)
			b.mu.Unlock()
		})
	}
}

// Put shallow-merges partial into the record and hands the identical
// merged snapshot to every dispatcher. Keys outside the frozen key set
// panic. The returned map is the snapshot the dispatchers saw.
func (b *Broadcast) Put(partial map[string]any) map[string]any {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	for k := range partial {
		if _, ok := b.values[k]; !ok {
			b.mu.Unlock()
			panic(fmt.Sprintf("rehook: unknown broadcast key %q", k))
		}
	}
	b.values = merge(b.values, partial)
	snapshot := merge(b.values, nil)
	dispatchers := make([]dispatcher, 0, len(b.dispatchers))
	for _, d := range b.dispatchers {
		dispatchers = append(dispatchers, d)
	}
	b.mu.Unlock()

	b.logger.Debug("broadcast put",
		zap.Int("keys", len(partial)),
		zap.Int("dispatchers", len(dispatchers)))
	for _, d := range dispatchers {
		fn := d.fn
		if fn == nil {
			continue
		}
		if d.scheduler == nil {
			fn(snapshot)
			continue
		}
		d.scheduler.Schedule(func() { fn(snapshot) })
	}
	return snapshot
}

// merge builds a fresh record from cur overlaid with partial. The merge
// is shallow: a nested record in partial replaces the nested record in
// cur wholesale.
func merge(cur, partial map[string]any) map[string]any {
	next := make(map[string]any, len(cur))
	for k, v := range cur {
		next[k] = v
	}
	for k, v := range partial {
		next[k] = v
	}
	return next
}
