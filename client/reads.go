package client

import (
	"context"

	"github.com/jrsteele09/go-taskboard-client/boards"
	"github.com/jrsteele09/go-taskboard-client/cache"
	"github.com/jrsteele09/go-taskboard-client/comments"
	"github.com/jrsteele09/go-taskboard-client/lists"
	"github.com/jrsteele09/go-taskboard-client/members"
	"github.com/jrsteele09/go-taskboard-client/tasks"
)

// Cache key constructors. Screens use these with Inspect to render entry
// state alongside the data the read methods return.

func BoardsKey() cache.Key {
	return cache.Key{Kind: cache.KindBoards}
}

func ListsKey(boardID string) cache.Key {
	return cache.Key{Kind: cache.KindLists, ScopeID: boardID}
}

func TasksKey(listID string) cache.Key {
	return cache.Key{Kind: cache.KindTasks, ScopeID: listID}
}

func CommentsKey(taskID string) cache.Key {
	return cache.Key{Kind: cache.KindComments, ScopeID: taskID}
}

func MembersKey(boardID string) cache.Key {
	return cache.Key{Kind: cache.KindMembers, ScopeID: boardID}
}

// Boards returns the user's boards through the cache.
func (c *Client) Boards(ctx context.Context) ([]boards.Board, error) {
	data, err := c.cache.Get(ctx, BoardsKey(), func(ctx context.Context) (any, error) {
		return c.api.Boards(ctx)
	})
	if err != nil {
		return nil, err
	}
	return data.([]boards.Board), nil
}

// Lists returns a board's lists through the cache.
func (c *Client) Lists(ctx context.Context, boardID string) ([]lists.List, error) {
	data, err := c.cache.Get(ctx, ListsKey(boardID), func(ctx context.Context) (any, error) {
		return c.api.Lists(ctx, boardID)
	})
	if err != nil {
		return nil, err
	}
	return data.([]lists.List), nil
}

// Tasks returns a list's tasks through the cache.
func (c *Client) Tasks(ctx context.Context, listID string) ([]tasks.Task, error) {
	data, err := c.cache.Get(ctx, TasksKey(listID), func(ctx context.Context) (any, error) {
		return c.api.Tasks(ctx, listID)
	})
	if err != nil {
		return nil, err
	}
	return data.([]tasks.Task), nil
}

// Comments returns a task's comments through the cache.
func (c *Client) Comments(ctx context.Context, taskID string) ([]comments.Comment, error) {
	data, err := c.cache.Get(ctx, CommentsKey(taskID), func(ctx context.Context) (any, error) {
		return c.api.Comments(ctx, taskID)
	})
	if err != nil {
		return nil, err
	}
	return data.([]comments.Comment), nil
}

// Members returns a board's memberships through the cache.
func (c *Client) Members(ctx context.Context, boardID string) ([]members.Member, error) {
	data, err := c.cache.Get(ctx, MembersKey(boardID), func(ctx context.Context) (any, error) {
		return c.api.Members(ctx, boardID)
	})
	if err != nil {
		return nil, err
	}
	return data.([]members.Member), nil
}
