package navcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestCache_ServesWithinTTLAndExpiresAfter(t *testing.T) {
	clock := newFakeClock()
	c := New[string](WithTTL(5*time.Minute), WithClock(clock.Now))

	c.Set("/docs/guides/install", "v1")
	clock.Advance(4*time.Minute + 59*time.Second)
	v, ok := c.Get("/docs/guides/install")
	require.True(t, ok)
	require.Equal(t, "v1", v)

	clock.Advance(time.Second)
	_, ok = c.Get("/docs/guides/install")
	require.False(t, ok)
	require.Equal(t, 0, c.Len(), "expired entry is removed on read")
}

func TestCache_FIFOEvictionIgnoresReads(t *testing.T) {
	c := New[int](WithCapacity(3))
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Reading "a" must not protect it.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("d", 4)
	require.Equal(t, []string{"b", "c", "d"}, c.Keys())
	_, ok = c.Get("a")
	require.False(t, ok)
	require.EqualValues(t, 1, c.Stats().Evictions)
}

func TestCache_OverwriteMovesToNewestWithoutEviction(t *testing.T) {
	c := New[int](WithCapacity(2))
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)

	require.Equal(t, []string{"b", "a"}, c.Keys())
	require.EqualValues(t, 0, c.Stats().Evictions)

	c.Set("c", 3)
	require.Equal(t, []string{"a", "c"}, c.Keys())
	v, _ := c.Get("a")
	require.Equal(t, 10, v)
}

func TestCache_OverwriteRefreshesTimestamp(t *testing.T) {
	clock := newFakeClock()
	c := New[int](WithTTL(time.Minute), WithClock(clock.Now))
	c.Set("k", 1)
	clock.Advance(50 * time.Second)
	c.Set("k", 2)
	clock.Advance(50 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestCache_GetOrLoadReusesWithinTTL(t *testing.T) {
	clock := newFakeClock()
	c := New[[]string](WithTTL(time.Minute), WithClock(clock.Now))
	var loads atomic.Int32
	load := func(context.Context) ([]string, error) {
		loads.Add(1)
		return []string{"install", "configure"}, nil
	}
	ctx := context.Background()

	first, err := c.GetOrLoad(ctx, "k", load)
	require.NoError(t, err)
	second, err := c.GetOrLoad(ctx, "k", load)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.EqualValues(t, 1, loads.Load())

	clock.Advance(time.Minute)
	_, err = c.GetOrLoad(ctx, "k", load)
	require.NoError(t, err)
	require.EqualValues(t, 2, loads.Load())
}

func TestCache_GetOrLoadCachesEmptyValues(t *testing.T) {
	c := New[[]string]()
	var loads atomic.Int32
	load := func(context.Context) ([]string, error) {
		loads.Add(1)
		return []string{}, nil
	}

	for range 3 {
		v, err := c.GetOrLoad(context.Background(), "empty", load)
		require.NoError(t, err)
		require.Empty(t, v)
	}
	require.EqualValues(t, 1, loads.Load())
}

func TestCache_GetOrLoadDoesNotCacheErrors(t *testing.T) {
	c := New[int]()
	boom := errors.New("boom")
	_, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, c.Len())

	v, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	require.Equal(t, 7, v)
}

func TestCache_ConcurrentMissesShareOneLoad(t *testing.T) {
	c := New[int]()
	var loads atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		loads.Add(1)
		<-release
		return 42, nil
	}

	const callers = 8
	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	results := make([]int, callers)
	errs := make([]error, callers)
	for i := range callers {
		go func() {
			defer done.Done()
			started.Done()
			results[i], errs[i] = c.GetOrLoad(context.Background(), "k", load)
		}()
	}
	started.Wait()
	// Late callers either join the flight or hit the stored value.
	time.Sleep(20 * time.Millisecond)
	close(release)
	done.Wait()

	require.EqualValues(t, 1, loads.Load())
	for i, v := range results {
		require.NoError(t, errs[i])
		require.Equal(t, 42, v)
	}
}

func TestCache_LeaderCancellationDoesNotFailWaiters(t *testing.T) {
	c := New[int]()
	entered := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (int, error) {
		close(entered)
		<-release
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 42, nil
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderDone := make(chan error, 1)
	go func() {
		_, err := c.GetOrLoad(leaderCtx, "k", load)
		leaderDone <- err
	}()
	<-entered

	type result struct {
		v   int
		err error
	}
	waiterDone := make(chan result, 1)
	go func() {
		v, err := c.GetOrLoad(context.Background(), "k", load)
		waiterDone <- result{v, err}
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	close(release)

	got := <-waiterDone
	require.NoError(t, got.err)
	require.Equal(t, 42, got.v)
	require.NoError(t, <-leaderDone)
	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 42, v)
}

func TestCache_GetOrLoadWithDoneContext(t *testing.T) {
	c := New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetOrLoad(ctx, "k", func(context.Context) (int, error) { return 1, nil })
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 0, c.Len())

	c.Set("k", 2)
	v, err := c.GetOrLoad(ctx, "k", func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestCache_SweepRemovesOnlyExpired(t *testing.T) {
	clock := newFakeClock()
	c := New[int](WithTTL(time.Minute), WithClock(clock.Now))
	c.Set("old", 1)
	clock.Advance(30 * time.Second)
	c.Set("new", 2)
	clock.Advance(40 * time.Second)

	require.Equal(t, 1, c.Sweep())
	require.Equal(t, []string{"new"}, c.Keys())
}

func TestCache_DeleteAndPurge(t *testing.T) {
	c := New[int]()
	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	require.Equal(t, []string{"b"}, c.Keys())
	c.Purge()
	require.Equal(t, 0, c.Len())
}

func TestCache_Defaults(t *testing.T) {
	c := New[int](WithTTL(0), WithCapacity(-1), WithName(""))
	require.Equal(t, DefaultTTL, c.opts.ttl)
	require.Equal(t, DefaultCapacity, c.opts.capacity)
	require.Equal(t, "navigation", c.Name())
}
