package state

import "testing"

func TestCell_SetAndWatch(t *testing.T) {
	cell := NewCell(1)
	var got []int

	cancel := cell.Watch(func(v int) {
		got = append(got, v)
	})

	if len(got) != 0 {
		t.Fatalf("expected no calls before set, got %d", len(got))
	}
	if !cell.Set(2) {
		t.Fatalf("expected set to report change")
	}
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected watcher to receive 2, got %v", got)
	}

	cancel()
	cell.Set(3)
	if len(got) != 1 {
		t.Fatalf("expected no calls after cancel, got %d", len(got))
	}
}

func TestCell_CancelIdempotent(t *testing.T) {
	cell := NewCell("a")
	calls := 0
	cancel := cell.Watch(func(string) { calls++ })

	cancel()
	cancel()
	cell.Set("b")
	if calls != 0 {
		t.Fatalf("expected no calls after double cancel, got %d", calls)
	}
}

func TestCell_ReferenceEqualitySuppression(t *testing.T) {
	type record struct{ n int }
	first := &record{n: 1}
	twin := &record{n: 1}

	cell := NewCell(first)
	calls := 0
	cell.Watch(func(*record) { calls++ })

	if cell.Set(first) {
		t.Fatalf("expected identical pointer to be suppressed")
	}
	if calls != 0 {
		t.Fatalf("expected no notification for identical pointer, got %d", calls)
	}
	if !cell.Set(twin) {
		t.Fatalf("expected distinct instance with equal contents to count as a change")
	}
	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}
}

func TestCell_SetEqualFunc(t *testing.T) {
	cell := NewCell(5)
	cell.SetEqualFunc(EqualComparable[int])

	if cell.Set(5) {
		t.Fatalf("expected set of equal value to report no change")
	}
	if !cell.Set(6) {
		t.Fatalf("expected set of new value to report change")
	}
}

func TestCell_Update(t *testing.T) {
	cell := NewCell(1)

	if !cell.Update(func(v int) int { return v + 1 }) {
		t.Fatalf("expected update to report change")
	}
	if cell.Get() != 2 {
		t.Fatalf("expected updated value 2, got %d", cell.Get())
	}
	if cell.Update(func(v int) int { return v }) {
		t.Fatalf("expected update to equal value to report no change")
	}
	if cell.Update(nil) {
		t.Fatalf("expected nil update to report no change")
	}
}

func TestCell_WatchWithScheduler(t *testing.T) {
	cell := NewCell(1)
	queue := NewQueue()
	var got []int

	cell.WatchWithScheduler(queue, func(v int) {
		got = append(got, v)
	})

	if !cell.Set(2) {
		t.Fatalf("expected set to report change")
	}
	if len(got) != 0 {
		t.Fatalf("expected callback to be queued, got %v", got)
	}
	if flushed := queue.Flush(); flushed != 1 {
		t.Fatalf("expected 1 callback flushed, got %d", flushed)
	}
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected queued watcher to receive 2, got %v", got)
	}
}

func TestCell_WatchChange(t *testing.T) {
	cell := NewCell(1)
	calls := 0
	cancel := cell.WatchChange(func() { calls++ })

	cell.Set(2)
	if calls != 1 {
		t.Fatalf("expected 1 change call, got %d", calls)
	}
	cancel()
	cell.Set(3)
	if calls != 1 {
		t.Fatalf("expected no calls after cancel, got %d", calls)
	}
}
