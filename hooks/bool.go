package hooks

import "github.com/stein197/rehook/state"

// Bool wraps a boolean cell with toggle conveniences.
type Bool struct {
	*state.Cell[bool]
}

// NewBool creates a boolean cell. Writes of the current value are
// suppressed, so watchers only fire on actual flips.
func NewBool(initial bool) *Bool {
	cell := state.NewCell(initial)
	cell.SetEqualFunc(state.EqualComparable[bool])
	return &Bool{Cell: cell}
}

// Toggle inverts the value.
func (b *Bool) Toggle() {
	if b == nil {
		return
	}
	b.Update(func(v bool) bool { return !v })
}

// SetTrue sets the value to true.
func (b *Bool) SetTrue() {
	if b == nil {
		return
	}
	b.Set(true)
}

// SetFalse sets the value to false.
func (b *Bool) SetFalse() {
	if b == nil {
		return
	}
	b.Set(false)
}
