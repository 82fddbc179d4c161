// Package store provides a shared key-value record with key-scoped
// change notifications.
//
// A Store owns a flat record whose key set is fixed at construction.
// Consumers bind to a single field (Bind) or to the whole record
// (BindAll) and register watchers that fire when the bound slice of the
// record changes. Keyed writes only notify watchers of that key;
// whole-record writes notify everyone. Redundant writes are suppressed
// by reference equality: two distinct values with identical contents
// count as a change.
//
// The package is host-agnostic. Watchers are plain callbacks; dispatch
// policy (synchronous, queued, goroutine) comes from a state.Scheduler
// supplied by the host integration layer.
package store
