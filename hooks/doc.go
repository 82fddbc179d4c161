// Package hooks provides small convenience wrappers over the state
// primitives: boolean toggles, previous-value tracking, forced
// re-render triggers, and async resource tracking.
package hooks
