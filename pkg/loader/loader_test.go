package loader_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/flightkit/pkg/loader"
)

// countingSource records how many times each key is loaded.
type countingSource struct {
	mu    sync.Mutex
	loads map[string]int
	delay time.Duration
	block chan struct{}
}

func newCountingSource() *countingSource {
	return &countingSource{loads: make(map[string]int)}
}

func (s *countingSource) Load(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	s.loads[key]++
	s.mu.Unlock()

	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return "", context.Cause(ctx)
		}
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", context.Cause(ctx)
		}
	}
	return "value:" + key, nil
}

func (s *countingSource) count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads[key]
}

func TestGetDeduplicatesPerKey(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	src.delay = 50 * time.Millisecond
	l := loader.New[string, string](src)

	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			val, err := l.Get(context.Background(), "alice")
			if err != nil {
				return err
			}
			if val != "value:alice" {
				return errors.New("unexpected value: " + val)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, 1, src.count("alice"))
}

func TestDistinctKeysLoadIndependently(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	l := loader.New[string, string](src, loader.WithTTL(time.Minute))

	a, err := l.Get(context.Background(), "a")
	require.NoError(t, err)
	require.Equal(t, "value:a", a)

	b, err := l.Get(context.Background(), "b")
	require.NoError(t, err)
	require.Equal(t, "value:b", b)

	require.Equal(t, 1, src.count("a"))
	require.Equal(t, 1, src.count("b"))
	require.Equal(t, 2, l.Len())
}

func TestTTLReuse(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	l := loader.New[string, string](src, loader.WithTTL(150*time.Millisecond))

	_, err := l.Get(context.Background(), "k")
	require.NoError(t, err)
	_, err = l.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, 1, src.count("k"), "call inside the TTL must not hit the source")

	time.Sleep(250 * time.Millisecond)

	_, err = l.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, 2, src.count("k"), "call after the TTL must reload")
}

func TestRefreshBypassesCache(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	l := loader.New[string, string](src, loader.WithTTL(time.Minute))

	_, err := l.Get(context.Background(), "k")
	require.NoError(t, err)

	_, err = l.Refresh(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, 2, src.count("k"))
}

func TestInvalidateDropsKey(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	l := loader.New[string, string](src, loader.WithTTL(time.Minute))

	_, err := l.Get(context.Background(), "k")
	require.NoError(t, err)

	l.Invalidate("k")
	require.Equal(t, 0, l.Len())

	_, err = l.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, 2, src.count("k"))
}

func TestInvalidateAbortsInFlightLoad(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	src.block = make(chan struct{})
	l := loader.New[string, string](src)

	done := make(chan error, 1)
	go func() {
		_, err := l.Get(context.Background(), "k")
		done <- err
	}()

	require.Eventually(t, func() bool { return src.count("k") == 1 },
		time.Second, 5*time.Millisecond)
	l.Invalidate("k")

	err := <-done
	require.ErrorIs(t, err, loader.ErrInvalidated)
}

func TestCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	l := loader.New[string, string](src,
		loader.WithTTL(time.Minute), loader.WithCapacity(2))

	for _, key := range []string{"a", "b", "c"} {
		_, err := l.Get(context.Background(), key)
		require.NoError(t, err)
	}
	require.Equal(t, 2, l.Len())

	// "a" was evicted, so it loads again; "c" is still cached.
	_, err := l.Get(context.Background(), "c")
	require.NoError(t, err)
	require.Equal(t, 1, src.count("c"))

	_, err = l.Get(context.Background(), "a")
	require.NoError(t, err)
	require.Equal(t, 2, src.count("a"))
}

func TestSourceErrorNotCached(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	src := loader.SourceFunc[string, int](func(ctx context.Context, key string) (int, error) {
		calls.Add(1)
		return 0, errors.New("flaky")
	})
	l := loader.New[string, int](src, loader.WithTTL(time.Minute))

	_, err := l.Get(context.Background(), "k")
	require.Error(t, err)

	require.Eventually(t, func() bool { return l.Len() == 0 },
		time.Second, 5*time.Millisecond)

	_, err = l.Get(context.Background(), "k")
	require.Error(t, err)
	require.Equal(t, int32(2), calls.Load(), "failed loads must not be served from the TTL window")
}

func TestNilSourcePanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		loader.New[string, string](nil)
	})
}
