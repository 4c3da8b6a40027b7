package mutation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-taskboard-client/cache"
	apperrors "github.com/jrsteele09/go-taskboard-client/internal/errors"
	"github.com/jrsteele09/go-taskboard-client/mutation"
)

// recordingInvalidator captures the writes fanned out to the cache.
type recordingInvalidator struct {
	mu     sync.Mutex
	writes []cache.Write
}

var _ mutation.Invalidator = (*recordingInvalidator)(nil)

func (r *recordingInvalidator) InvalidateDependents(w cache.Write) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, w)
}

func (r *recordingInvalidator) Writes() []cache.Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]cache.Write(nil), r.writes...)
}

type testFixture struct {
	invalidator *recordingInvalidator
	coordinator *mutation.Coordinator
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	invalidator := &recordingInvalidator{}
	coordinator, err := mutation.New(invalidator)
	require.NoError(t, err)
	return &testFixture{invalidator: invalidator, coordinator: coordinator}
}

func TestNewRequiresInvalidator(t *testing.T) {
	_, err := mutation.New(nil)
	require.Error(t, err)
}

func TestSuccessfulMutationInvalidatesDependents(t *testing.T) {
	f := setupTestFixture(t)
	affects := []cache.Write{{Kind: cache.KindTasks, ListID: "l1", TaskID: "t1"}}

	result, err := f.coordinator.Run(context.Background(), "task.update/t1",
		func(ctx context.Context) (any, error) { return "updated", nil }, affects)
	require.NoError(t, err)
	require.Equal(t, "updated", result)
	require.Equal(t, affects, f.invalidator.Writes())
	require.False(t, f.coordinator.IsPending("task.update/t1"))
}

func TestFailedMutationLeavesCacheUntouched(t *testing.T) {
	f := setupTestFixture(t)
	opErr := errors.New("server rejected write")

	_, err := f.coordinator.Run(context.Background(), "task.update/t1",
		func(ctx context.Context) (any, error) { return nil, opErr },
		[]cache.Write{{Kind: cache.KindTasks, ListID: "l1"}})
	require.ErrorIs(t, err, opErr)
	require.Empty(t, f.invalidator.Writes())
	require.ErrorIs(t, f.coordinator.Err("task.update/t1"), opErr)
}

func TestDuplicateSubmissionIsRejected(t *testing.T) {
	f := setupTestFixture(t)
	entered := make(chan struct{})
	release := make(chan struct{})

	firstDone := make(chan error, 1)
	go func() {
		_, err := f.coordinator.Run(context.Background(), "task.update/t1",
			func(ctx context.Context) (any, error) {
				close(entered)
				<-release
				return "updated", nil
			}, nil)
		firstDone <- err
	}()
	<-entered
	require.True(t, f.coordinator.IsPending("task.update/t1"))

	_, err := f.coordinator.Run(context.Background(), "task.update/t1",
		func(ctx context.Context) (any, error) { return nil, nil }, nil)
	require.ErrorIs(t, err, apperrors.ErrMutationPending)

	close(release)
	require.NoError(t, <-firstDone)
	require.False(t, f.coordinator.IsPending("task.update/t1"))
}

func TestDistinctIdentitiesRunConcurrently(t *testing.T) {
	f := setupTestFixture(t)
	release := make(chan struct{})
	run := func(id string) chan error {
		done := make(chan error, 1)
		go func() {
			_, err := f.coordinator.Run(context.Background(), id,
				func(ctx context.Context) (any, error) {
					<-release
					return nil, nil
				}, nil)
			done <- err
		}()
		return done
	}

	first := run("task.update/t1")
	second := run("task.update/t2")
	require.Eventually(t, func() bool {
		return f.coordinator.IsPending("task.update/t1") && f.coordinator.IsPending("task.update/t2")
	}, time.Second, time.Millisecond)

	close(release)
	require.NoError(t, <-first)
	require.NoError(t, <-second)
}

func TestNextInvocationClearsLastError(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.coordinator.Run(ctx, "board.create",
		func(ctx context.Context) (any, error) { return nil, errors.New("server rejected write") }, nil)
	require.Error(t, err)
	require.Error(t, f.coordinator.Err("board.create"))

	_, err = f.coordinator.Run(ctx, "board.create",
		func(ctx context.Context) (any, error) { return "created", nil },
		[]cache.Write{{Kind: cache.KindBoards}})
	require.NoError(t, err)
	require.NoError(t, f.coordinator.Err("board.create"))
}

func TestMultipleAffectedWritesAllInvalidate(t *testing.T) {
	f := setupTestFixture(t)
	affects := []cache.Write{
		{Kind: cache.KindTasks, ListID: "l1"},
		{Kind: cache.KindMembers, BoardID: "b1"},
	}

	_, err := f.coordinator.Run(context.Background(), "bulk",
		func(ctx context.Context) (any, error) { return nil, nil }, affects)
	require.NoError(t, err)
	require.Equal(t, affects, f.invalidator.Writes())
}
