package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/stein197/rehook/state"
)

// registration associates one consumer with its watched slice of the
// record. Keyed registrations carry a value callback; whole-record
// registrations carry an unconditional force callback.
type registration struct {
	key       string
	all       bool
	notify    func(any)
	force     func()
	scheduler state.Scheduler
}

// Store owns a shared record and the registrations watching it.
// The key set is frozen at construction: values change, keys do not.
type Store struct {
	mu     sync.Mutex
	values map[string]any
	regs   map[string]registration
	equal  state.EqualFunc[any]
	logger *zap.Logger

	// fields and record are built once so a consumer gets the same
	// binding handle on every render pass.
	fields map[string]*Field
	record *Record
}

// New creates a store over a copy of initial. The key set of initial is
// the store's key set for its whole lifetime.
func New(initial map[string]any, opts ...Option) *Store {
	cfg := newConfig(opts)
	values := make(map[string]any, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	s := &Store{
		values: values,
		regs:   make(map[string]registration),
		equal:  cfg.equal,
		logger: cfg.logger,
	}
	s.fields = make(map[string]*Field, len(values))
	for k := range values {
		s.fields[k] = &Field{store: s, key: k}
	}
	s.record = &Record{store: s}
	return s
}

// Bind returns the binding for one field of the record. The returned
// handle is the same for every call with the same key, so it is safe
// to hold across re-renders. Bind panics on a key outside the store's
// fixed key set.
func (s *Store) Bind(key string) *Field {
	if s == nil {
		panic("rehook: Bind on nil store")
	}
	f, ok := s.fields[key]
	if !ok {
		panic(fmt.Sprintf("rehook: unknown store key %q", key))
	}
	return f
}

// BindAll returns the whole-record binding. Like Bind, the handle is
// stable across calls.
func (s *Store) BindAll() *Record {
	if s == nil {
		panic("rehook: BindAll on nil store")
	}
	return s.record
}

// Has reports whether key belongs to the store's key set.
func (s *Store) Has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.fields[key]
	return ok
}

// Keys returns the store's key set in sorted order.
func (s *Store) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.fields))
	for k := range s.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the current record.
func (s *Store) Snapshot() map[string]any {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(map[string]any, len(s.values))
	for k, v := range s.values {
		snapshot[k] = v
	}
	return snapshot
}

func (s *Store) get(key string) any {
	s.mu.Lock()
	value := s.values[key]
	s.mu.Unlock()
	return value
}

// setKey runs the keyed update algorithm: suppress unchanged writes,
// store the new value, then notify exactly the registrations watching
// this key plus every whole-record registration.
func (s *Store) setKey(key string, next any) bool {
	s.mu.Lock()
	cur := s.values[key]
	if s.equal(cur, next) {
		s.mu.Unlock()
		s.logger.Debug("store write suppressed", zap.String("key", key))
		return false
	}
	s.values[key] = next
	regs := s.copyRegsLocked()
	s.mu.Unlock()

	s.logger.Debug("store write", zap.String("key", key), zap.Int("registrations", len(regs)))
	for _, r := range regs {
		switch {
		case r.all:
			dispatch(r.scheduler, r.force)
		case r.key == key:
			notifyValue(r.scheduler, r.notify, next)
		}
	}
	return true
}

func (s *Store) updateKey(key string, fn func(any) any) bool {
	if fn == nil {
		return false
	}
	return s.setKey(key, fn(s.get(key)))
}

// replace rewrites every field of the record. A whole-record write
// cannot know which keys logically changed, so every registration is
// notified unconditionally. next must carry exactly the store's key set.
func (s *Store) replace(next map[string]any) bool {
	for k := range next {
		if !s.Has(k) {
			panic(fmt.Sprintf("rehook: unknown store key %q", k))
		}
	}
	for k := range s.fields {
		if _, ok := next[k]; !ok {
			panic(fmt.Sprintf("rehook: whole-store write missing key %q", k))
		}
	}

	s.mu.Lock()
	for k, v := range next {
		s.values[k] = v
	}
	values := make(map[string]any, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	regs := s.copyRegsLocked()
	s.mu.Unlock()

	s.logger.Debug("store replace", zap.Int("registrations", len(regs)))
	for _, r := range regs {
		if r.all {
			dispatch(r.scheduler, r.force)
			continue
		}
		notifyValue(r.scheduler, r.notify, values[r.key])
	}
	return true
}

// watch adds a registration and returns its idempotent cancel.
func (s *Store) watch(reg registration) func() {
	id := ulid.Make().String()
	s.mu.Lock()
	s.regs[id] = reg
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.regs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) copyRegsLocked() []registration {
	if len(s.regs) == 0 {
		return nil
	}
	regs := make([]registration, 0, len(s.regs))
	for _, r := range s.regs {
		regs = append(regs, r)
	}
	return regs
}

func dispatch(scheduler state.Scheduler, fn func()) {
	if fn == nil {
		return
	}
	if scheduler == nil {
		fn()
		return
	}
	scheduler.Schedule(fn)
}

func notifyValue(scheduler state.Scheduler, fn func(any), value any) {
	if fn == nil {
		return
	}
	if scheduler == nil {
		fn(value)
		return
	}
	scheduler.Schedule(func() { fn(value) })
}
