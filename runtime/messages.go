// Package runtime is the host-integration layer: it owns the render
// loop that turns queued state notifications into consumer re-renders.
// The state and store packages stay host-agnostic; this package is one
// possible host.
package runtime

// Message is a unit of work posted to the loop.
type Message interface{}

// FlushMsg asks the loop to flush queued state callbacks.
type FlushMsg struct{}

// RenderMsg asks the loop for a render pass.
type RenderMsg struct{}

// StopMsg stops the loop.
type StopMsg struct{}
