package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-taskboard-client/cache"
)

func TestBoardWriteDependents(t *testing.T) {
	keys := cache.DependentsOf(cache.Write{Kind: cache.KindBoards, BoardID: "b1"})
	require.ElementsMatch(t, []cache.Key{
		{Kind: cache.KindBoards},
		{Kind: cache.KindLists, ScopeID: "b1"},
	}, keys)
}

func TestBoardCreateSkipsListsEdge(t *testing.T) {
	// A board-create carries no board id yet, so there is no lists
	// collection to invalidate.
	keys := cache.DependentsOf(cache.Write{Kind: cache.KindBoards})
	require.Equal(t, []cache.Key{{Kind: cache.KindBoards}}, keys)
}

func TestListWriteDependents(t *testing.T) {
	keys := cache.DependentsOf(cache.Write{Kind: cache.KindLists, BoardID: "b1", ListID: "l1"})
	require.ElementsMatch(t, []cache.Key{
		{Kind: cache.KindLists, ScopeID: "b1"},
		{Kind: cache.KindTasks, ScopeID: "l1"},
	}, keys)
}

func TestTaskWriteDependents(t *testing.T) {
	keys := cache.DependentsOf(cache.Write{Kind: cache.KindTasks, ListID: "l1", TaskID: "t1"})
	require.ElementsMatch(t, []cache.Key{
		{Kind: cache.KindTasks, ScopeID: "l1"},
		{Kind: cache.KindComments, ScopeID: "t1"},
	}, keys)
}

func TestTaskWriteNeverReachesBoardsOrLists(t *testing.T) {
	// Invalidation is one hop only.
	keys := cache.DependentsOf(cache.Write{Kind: cache.KindTasks, BoardID: "b1", ListID: "l1", TaskID: "t1"})
	for _, key := range keys {
		require.NotEqual(t, cache.KindBoards, key.Kind)
		require.NotEqual(t, cache.KindLists, key.Kind)
	}
}

func TestCommentWriteDependents(t *testing.T) {
	keys := cache.DependentsOf(cache.Write{Kind: cache.KindComments, TaskID: "t1"})
	require.Equal(t, []cache.Key{{Kind: cache.KindComments, ScopeID: "t1"}}, keys)
}

func TestMemberWriteDependents(t *testing.T) {
	keys := cache.DependentsOf(cache.Write{Kind: cache.KindMembers, BoardID: "b1"})
	require.Equal(t, []cache.Key{{Kind: cache.KindMembers, ScopeID: "b1"}}, keys)
}
