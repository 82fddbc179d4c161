package hooks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stein197/rehook/state"
)

func TestBool_Toggle(t *testing.T) {
	b := NewBool(false)
	flips := 0
	b.Watch(func(bool) { flips++ })

	b.Toggle()
	require.True(t, b.Get())
	b.Toggle()
	require.False(t, b.Get())
	require.Equal(t, 2, flips)
}

func TestBool_RedundantWritesSuppressed(t *testing.T) {
	b := NewBool(true)
	calls := 0
	b.Watch(func(bool) { calls++ })

	b.SetTrue()
	require.Zero(t, calls)
	b.SetFalse()
	require.Equal(t, 1, calls)
}

func TestPrevious_TracksPriorValue(t *testing.T) {
	cell := state.NewCell(1)
	prev := NewPrevious(cell)

	require.Equal(t, 1, prev.Get())
	require.Equal(t, 1, prev.Current())

	cell.Set(2)
	require.Equal(t, 1, prev.Get())
	require.Equal(t, 2, prev.Current())

	cell.Set(3)
	require.Equal(t, 2, prev.Get())
	require.Equal(t, 3, prev.Current())
}

func TestPrevious_Stop(t *testing.T) {
	cell := state.NewCell("a")
	prev := NewPrevious(cell)

	prev.Stop()
	prev.Stop()
	cell.Set("b")

	require.Equal(t, "a", prev.Get())
	require.Equal(t, "a", prev.Current())
}

func TestRefresher_Trigger(t *testing.T) {
	r := NewRefresher()
	calls := 0
	cancel := r.Watch(func() { calls++ })

	r.Trigger()
	r.Trigger()
	require.Equal(t, 2, calls)
	require.Equal(t, uint64(2), r.Revision())

	cancel()
	r.Trigger()
	require.Equal(t, 2, calls)
}

func TestRefresher_WatchWithScheduler(t *testing.T) {
	r := NewRefresher()
	queue := state.NewQueue()
	calls := 0

	r.WatchWithScheduler(queue, func() { calls++ })

	r.Trigger()
	require.Zero(t, calls)
	require.Equal(t, 1, queue.Flush())
	require.Equal(t, 1, calls)
}
