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

// Every write validates its input first (no network call, no cache change
// on a validation failure), then runs through the mutation coordinator,
// which invalidates the declared dependents only after the server confirms
// the write.

// CreateBoard creates a board.
func (c *Client) CreateBoard(ctx context.Context, in boards.CreateInput) (*boards.Board, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	result, err := c.mutations.Run(ctx, "board.create",
		func(ctx context.Context) (any, error) { return c.api.CreateBoard(ctx, in) },
		[]cache.Write{{Kind: cache.KindBoards}})
	if err != nil {
		return nil, err
	}
	return result.(*boards.Board), nil
}

// UpdateBoard updates a board.
func (c *Client) UpdateBoard(ctx context.Context, in boards.UpdateInput) (*boards.Board, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	result, err := c.mutations.Run(ctx, "board.update/"+in.ID,
		func(ctx context.Context) (any, error) { return c.api.UpdateBoard(ctx, in) },
		[]cache.Write{{Kind: cache.KindBoards, BoardID: in.ID}})
	if err != nil {
		return nil, err
	}
	return result.(*boards.Board), nil
}

// DeleteBoard removes a board.
func (c *Client) DeleteBoard(ctx context.Context, boardID string) error {
	_, err := c.mutations.Run(ctx, "board.delete/"+boardID,
		func(ctx context.Context) (any, error) { return c.api.DeleteBoard(ctx, boardID) },
		[]cache.Write{{Kind: cache.KindBoards, BoardID: boardID}})
	return err
}

// CreateList creates a list on a board.
func (c *Client) CreateList(ctx context.Context, in lists.CreateInput) (*lists.List, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	result, err := c.mutations.Run(ctx, "list.create/"+in.BoardID,
		func(ctx context.Context) (any, error) { return c.api.CreateList(ctx, in) },
		[]cache.Write{{Kind: cache.KindLists, BoardID: in.BoardID}})
	if err != nil {
		return nil, err
	}
	return result.(*lists.List), nil
}

// UpdateList updates a list.
func (c *Client) UpdateList(ctx context.Context, in lists.UpdateInput) (*lists.List, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	result, err := c.mutations.Run(ctx, "list.update/"+in.ListID,
		func(ctx context.Context) (any, error) { return c.api.UpdateList(ctx, in) },
		[]cache.Write{{Kind: cache.KindLists, BoardID: in.BoardID, ListID: in.ListID}})
	if err != nil {
		return nil, err
	}
	return result.(*lists.List), nil
}

// DeleteList removes a list. The board ID scopes invalidation of the
// board's lists collection.
func (c *Client) DeleteList(ctx context.Context, boardID, listID string) error {
	_, err := c.mutations.Run(ctx, "list.delete/"+listID,
		func(ctx context.Context) (any, error) { return c.api.DeleteList(ctx, listID) },
		[]cache.Write{{Kind: cache.KindLists, BoardID: boardID, ListID: listID}})
	return err
}

// CreateTask creates a task on a list.
func (c *Client) CreateTask(ctx context.Context, in tasks.CreateInput) (*tasks.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	result, err := c.mutations.Run(ctx, "task.create/"+in.ListID,
		func(ctx context.Context) (any, error) { return c.api.CreateTask(ctx, in) },
		[]cache.Write{{Kind: cache.KindTasks, ListID: in.ListID}})
	if err != nil {
		return nil, err
	}
	return result.(*tasks.Task), nil
}

// UpdateTask applies a patch to a task.
func (c *Client) UpdateTask(ctx context.Context, listID, taskID string, patch tasks.Patch) (*tasks.Task, error) {
	result, err := c.mutations.Run(ctx, "task.update/"+taskID,
		func(ctx context.Context) (any, error) { return c.api.UpdateTask(ctx, taskID, patch) },
		[]cache.Write{{Kind: cache.KindTasks, ListID: listID, TaskID: taskID}})
	if err != nil {
		return nil, err
	}
	return result.(*tasks.Task), nil
}

// SaveTaskEdits diffs an edit buffer against its baseline snapshot and
// submits only the changed fields. A no-change save returns the baseline
// without touching the network or the cache.
func (c *Client) SaveTaskEdits(ctx context.Context, listID string, baseline, edited tasks.Task) (*tasks.Task, error) {
	patch := tasks.Diff(baseline, edited)
	if patch.Empty() {
		return &baseline, nil
	}
	return c.UpdateTask(ctx, listID, baseline.ID, patch)
}

// DeleteTask removes a task. The list ID scopes invalidation of the list's
// tasks collection.
func (c *Client) DeleteTask(ctx context.Context, listID, taskID string) error {
	_, err := c.mutations.Run(ctx, "task.delete/"+taskID,
		func(ctx context.Context) (any, error) { return c.api.DeleteTask(ctx, taskID) },
		[]cache.Write{{Kind: cache.KindTasks, ListID: listID, TaskID: taskID}})
	return err
}

// CreateComment creates a comment on a task.
func (c *Client) CreateComment(ctx context.Context, in comments.CreateInput) (*comments.Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	result, err := c.mutations.Run(ctx, "comment.create/"+in.TaskID,
		func(ctx context.Context) (any, error) { return c.api.CreateComment(ctx, in) },
		[]cache.Write{{Kind: cache.KindComments, TaskID: in.TaskID}})
	if err != nil {
		return nil, err
	}
	return result.(*comments.Comment), nil
}

// UpdateComment updates a comment.
func (c *Client) UpdateComment(ctx context.Context, in comments.UpdateInput) (*comments.Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	result, err := c.mutations.Run(ctx, "comment.update/"+in.CommentID,
		func(ctx context.Context) (any, error) { return c.api.UpdateComment(ctx, in) },
		[]cache.Write{{Kind: cache.KindComments, TaskID: in.TaskID}})
	if err != nil {
		return nil, err
	}
	return result.(*comments.Comment), nil
}

// DeleteComment removes a comment. The task ID scopes invalidation of the
// task's comments collection.
func (c *Client) DeleteComment(ctx context.Context, taskID, commentID string) error {
	_, err := c.mutations.Run(ctx, "comment.delete/"+commentID,
		func(ctx context.Context) (any, error) { return c.api.DeleteComment(ctx, commentID) },
		[]cache.Write{{Kind: cache.KindComments, TaskID: taskID}})
	return err
}

// CreateMember adds a user to a board.
func (c *Client) CreateMember(ctx context.Context, in members.CreateInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	result, err := c.mutations.Run(ctx, "member.create/"+in.BoardID,
		func(ctx context.Context) (any, error) { return c.api.CreateMember(ctx, in) },
		[]cache.Write{{Kind: cache.KindMembers, BoardID: in.BoardID}})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// UpdateMember changes a membership's role.
func (c *Client) UpdateMember(ctx context.Context, in members.UpdateInput) (*members.Member, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	result, err := c.mutations.Run(ctx, "member.update/"+in.MemberID,
		func(ctx context.Context) (any, error) { return c.api.UpdateMember(ctx, in) },
		[]cache.Write{{Kind: cache.KindMembers, BoardID: in.BoardID}})
	if err != nil {
		return nil, err
	}
	return result.(*members.Member), nil
}

// DeleteMember removes a membership. The board ID scopes invalidation of
// the board's members collection.
func (c *Client) DeleteMember(ctx context.Context, boardID, memberID string) error {
	_, err := c.mutations.Run(ctx, "member.delete/"+memberID,
		func(ctx context.Context) (any, error) { return c.api.DeleteMember(ctx, memberID) },
		[]cache.Write{{Kind: cache.KindMembers, BoardID: boardID}})
	return err
}
