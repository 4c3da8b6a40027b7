package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-taskboard-client/cache"
	apperrors "github.com/jrsteele09/go-taskboard-client/internal/errors"
)

var boardsKey = cache.Key{Kind: cache.KindBoards}

// countingFetch returns a fetch that counts calls and serves fixed data.
func countingFetch(data any) (cache.FetchFunc, *atomic.Int32) {
	var calls atomic.Int32
	return func(ctx context.Context) (any, error) {
		calls.Add(1)
		return data, nil
	}, &calls
}

func TestGetFetchesOnceAndServesFromCache(t *testing.T) {
	store := cache.New()
	fetch, calls := countingFetch([]string{"board-1"})
	ctx := context.Background()

	data, err := store.Get(ctx, boardsKey, fetch)
	require.NoError(t, err)
	require.Equal(t, []string{"board-1"}, data)

	data, err = store.Get(ctx, boardsKey, fetch)
	require.NoError(t, err)
	require.Equal(t, []string{"board-1"}, data)
	require.Equal(t, int32(1), calls.Load())
}

func TestConcurrentGetsCoalesceOntoOneFetch(t *testing.T) {
	store := cache.New()
	release := make(chan struct{})
	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "payload", nil
	}

	const callers = 8
	results := make([]any, callers)
	errs := make([]error, callers)
	var started, wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		started.Add(1)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started.Done()
			results[i], errs[i] = store.Get(context.Background(), boardsKey, fetch)
		}(i)
	}
	started.Wait()
	// Give every caller time to attach to the flight before releasing it.
	require.Eventually(t, func() bool {
		return store.Snapshot(boardsKey).State == cache.StateLoading
	}, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, "payload", results[i])
	}
}

func TestInvalidateMarksFreshStaleAndKeepsData(t *testing.T) {
	store := cache.New()
	fetch, _ := countingFetch([]string{"board-1"})

	_, err := store.Get(context.Background(), boardsKey, fetch)
	require.NoError(t, err)
	require.Equal(t, cache.StateFresh, store.Snapshot(boardsKey).State)

	store.Invalidate(boardsKey)

	snap := store.Snapshot(boardsKey)
	require.Equal(t, cache.StateStale, snap.State)
	require.Equal(t, []string{"board-1"}, snap.Data)
	require.True(t, snap.HasData)
}

func TestInvalidateUntrackedKeyIsANoOp(t *testing.T) {
	store := cache.New()

	store.Invalidate(boardsKey)
	require.Equal(t, cache.StateEmpty, store.Snapshot(boardsKey).State)
}

func TestStaleReadRefetches(t *testing.T) {
	store := cache.New()
	responses := [][]string{
		{"task-1", "task-2", "task-3"},
		{"task-1", "task-2", "task-3", "task-4"},
	}
	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		return responses[calls.Add(1)-1], nil
	}
	key := cache.Key{Kind: cache.KindTasks, ScopeID: "l1"}
	ctx := context.Background()

	data, err := store.Get(ctx, key, fetch)
	require.NoError(t, err)
	require.Len(t, data, 3)

	store.Invalidate(key)

	data, err = store.Get(ctx, key, fetch)
	require.NoError(t, err)
	require.Len(t, data, 4)
	require.Equal(t, int32(2), calls.Load())
}

func TestFailedRefreshKeepsPreviousData(t *testing.T) {
	store := cache.New(cache.WithRetryPolicy(0, 0))
	var fail atomic.Bool
	fetch := func(ctx context.Context) (any, error) {
		if fail.Load() {
			return nil, errors.New("server unavailable")
		}
		return []string{"board-1"}, nil
	}
	ctx := context.Background()

	_, err := store.Get(ctx, boardsKey, fetch)
	require.NoError(t, err)

	store.Invalidate(boardsKey)
	fail.Store(true)

	_, err = store.Get(ctx, boardsKey, fetch)
	require.ErrorIs(t, err, apperrors.ErrFetchExhausted)

	snap := store.Snapshot(boardsKey)
	require.Equal(t, cache.StateError, snap.State)
	require.Equal(t, []string{"board-1"}, snap.Data)
	require.True(t, snap.HasData)
	require.Error(t, snap.ErrorDetail)
}

func TestRetryBudgetRecovers(t *testing.T) {
	store := cache.New(cache.WithRetryPolicy(2, 0))
	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) < 3 {
			return nil, errors.New("transient")
		}
		return "payload", nil
	}

	data, err := store.Get(context.Background(), boardsKey, fetch)
	require.NoError(t, err)
	require.Equal(t, "payload", data)
	require.Equal(t, int32(3), calls.Load())
}

func TestRetryBudgetExhausted(t *testing.T) {
	store := cache.New(cache.WithRetryPolicy(2, 0))
	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return nil, errors.New("server unavailable")
	}

	_, err := store.Get(context.Background(), boardsKey, fetch)
	require.ErrorIs(t, err, apperrors.ErrFetchExhausted)
	require.Equal(t, int32(3), calls.Load())
	require.Equal(t, cache.StateError, store.Snapshot(boardsKey).State)
}

func TestAbandonedFetchRevertsEntryState(t *testing.T) {
	store := cache.New(cache.WithRetryPolicy(0, 0))
	fetch := func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := store.Get(ctx, boardsKey, fetch)
		done <- err
	}()

	require.Eventually(t, func() bool {
		return store.Snapshot(boardsKey).State == cache.StateLoading
	}, time.Second, time.Millisecond)
	cancel()

	require.ErrorIs(t, <-done, context.Canceled)
	// The cancelled flight settles back to the pre-loading state, never
	// error.
	require.Eventually(t, func() bool {
		return store.Snapshot(boardsKey).State == cache.StateEmpty
	}, time.Second, time.Millisecond)
}

func TestDepartingCallerDoesNotCancelOthers(t *testing.T) {
	store := cache.New()
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		select {
		case <-release:
			return "payload", nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan error, 1)
	go func() {
		_, err := store.Get(firstCtx, boardsKey, fetch)
		firstDone <- err
	}()
	require.Eventually(t, func() bool {
		return store.Snapshot(boardsKey).State == cache.StateLoading
	}, time.Second, time.Millisecond)

	secondDone := make(chan error, 1)
	var secondData any
	go func() {
		data, err := store.Get(context.Background(), boardsKey, fetch)
		secondData = data
		secondDone <- err
	}()

	cancelFirst()
	require.ErrorIs(t, <-firstDone, context.Canceled)

	close(release)
	require.NoError(t, <-secondDone)
	require.Equal(t, "payload", secondData)
}

func TestFreshnessWindowExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := cache.New(
		cache.WithFreshFor(5*time.Minute),
		cache.WithNowTime(func() time.Time { return now }),
	)
	fetch, calls := countingFetch("payload")
	ctx := context.Background()

	_, err := store.Get(ctx, boardsKey, fetch)
	require.NoError(t, err)
	require.Equal(t, cache.StateFresh, store.Snapshot(boardsKey).State)

	now = now.Add(6 * time.Minute)
	require.Equal(t, cache.StateStale, store.Snapshot(boardsKey).State)

	_, err = store.Get(ctx, boardsKey, fetch)
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load())
}

func TestInvalidateDependentsAppliesGraph(t *testing.T) {
	store := cache.New()
	ctx := context.Background()
	tasksKey := cache.Key{Kind: cache.KindTasks, ScopeID: "l1"}
	commentsKey := cache.Key{Kind: cache.KindComments, ScopeID: "t1"}

	fetchBoards, _ := countingFetch("boards")
	fetchTasks, _ := countingFetch("tasks")
	fetchComments, _ := countingFetch("comments")
	_, err := store.Get(ctx, boardsKey, fetchBoards)
	require.NoError(t, err)
	_, err = store.Get(ctx, tasksKey, fetchTasks)
	require.NoError(t, err)
	_, err = store.Get(ctx, commentsKey, fetchComments)
	require.NoError(t, err)

	store.InvalidateDependents(cache.Write{Kind: cache.KindTasks, ListID: "l1", TaskID: "t1"})

	require.Equal(t, cache.StateStale, store.Snapshot(tasksKey).State)
	require.Equal(t, cache.StateStale, store.Snapshot(commentsKey).State)
	require.Equal(t, cache.StateFresh, store.Snapshot(boardsKey).State)
}
