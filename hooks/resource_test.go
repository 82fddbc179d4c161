package hooks

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitForPhase[T any](t *testing.T, r *Resource[T], want Phase) {
	t.Helper()
	require.Eventually(t, func() bool {
		return r.Phase() == want
	}, time.Second, time.Millisecond)
}

func TestResource_LoadSuccess(t *testing.T) {
	r := NewResource(func(context.Context) (string, error) {
		return "payload", nil
	})
	var mu sync.Mutex
	var phases []Phase
	r.WatchPhase(func(p Phase) {
		mu.Lock()
		phases = append(phases, p)
		mu.Unlock()
	})

	require.Equal(t, Pending, r.Phase())
	require.True(t, r.IsLoading())

	r.Load(context.Background())
	waitForPhase(t, r, Ready)

	require.Equal(t, "payload", r.Data())
	require.Equal(t, "payload", r.DataOr("fallback"))
	require.NoError(t, r.Err())
	mu.Lock()
	defer mu.Unlock()
	require.Contains(t, phases, Loading)
	require.Contains(t, phases, Ready)
}

func TestResource_LoadFailure(t *testing.T) {
	boom := errors.New("boom")
	r := NewResource(func(context.Context) (int, error) {
		return 0, boom
	})

	failed := make(chan error, 1)
	r.OnFail(func(err error) { failed <- err })

	r.Load(context.Background())
	waitForPhase(t, r, Failed)

	require.ErrorIs(t, r.Err(), boom)
	require.Equal(t, 5, r.DataOr(5))
	require.ErrorIs(t, <-failed, boom)
}

func TestResource_RetryOnError(t *testing.T) {
	var attempts atomic.Int32
	r := NewResource(func(context.Context) (int, error) {
		if attempts.Add(1) < 3 {
			return 0, errors.New("transient")
		}
		return 7, nil
	}).RetryOnError(2, time.Millisecond)

	r.Load(context.Background())
	waitForPhase(t, r, Ready)

	require.Equal(t, 7, r.Data())
	require.EqualValues(t, 3, attempts.Load())
}

func TestResource_StaleFor(t *testing.T) {
	var loads atomic.Int32
	r := NewResource(func(context.Context) (int, error) {
		return int(loads.Add(1)), nil
	}).StaleFor(time.Hour)

	r.Load(context.Background())
	waitForPhase(t, r, Ready)
	require.EqualValues(t, 1, loads.Load())

	// Fresh data: Load is a no-op, Reload is not.
	r.Load(context.Background())
	require.EqualValues(t, 1, loads.Load())

	r.Invalidate()
	r.Load(context.Background())
	require.Eventually(t, func() bool { return loads.Load() == 2 }, time.Second, time.Millisecond)
}

func TestResource_ReloadSupersedes(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var calls atomic.Int32
	r := NewResource(func(ctx context.Context) (int, error) {
		if calls.Add(1) == 1 {
			close(firstStarted)
			<-releaseFirst
			return 1, nil
		}
		return 2, nil
	})

	r.Reload(context.Background())
	<-firstStarted
	r.Reload(context.Background())
	waitForPhase(t, r, Ready)
	require.Equal(t, 2, r.Data())

	// The superseded first fetch completes but its result is discarded.
	close(releaseFirst)
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, 2, r.Data())
}

func TestResource_Mutate(t *testing.T) {
	r := NewResource(func(context.Context) (int, error) { return 10, nil })
	r.Load(context.Background())
	waitForPhase(t, r, Ready)

	r.Mutate(func(v int) int { return v + 1 })
	require.Equal(t, 11, r.Data())
}

func TestResource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewResource(func(ctx context.Context) (int, error) {
		return 1, nil
	})
	r.Reload(ctx)

	// The run is discarded before fetching; phase stays Loading and no
	// data lands.
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, 0, r.Data())
}
