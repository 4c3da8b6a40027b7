package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-taskboard-client/comments"
)

type commentsResponse struct {
	envelope
	Comments []comments.Comment `json:"comments"`
	Count    int                `json:"count"`
}

type commentResponse struct {
	envelope
	Comment comments.Comment `json:"comment"`
}

// Comments returns the comments of a task, in server order.
func (c *Client) Comments(ctx context.Context, taskID string) ([]comments.Comment, error) {
	var out commentsResponse
	if err := c.do(ctx, http.MethodGet, "/comment/"+taskID, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

// CreateComment creates a comment on a task and returns the server's record.
func (c *Client) CreateComment(ctx context.Context, in comments.CreateInput) (*comments.Comment, error) {
	var out commentResponse
	if err := c.do(ctx, http.MethodPost, "/comment/"+in.TaskID, in, &out, true); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

// UpdateComment updates a comment and returns the server's record.
func (c *Client) UpdateComment(ctx context.Context, in comments.UpdateInput) (*comments.Comment, error) {
	var out commentResponse
	if err := c.do(ctx, http.MethodPatch, "/comment/"+in.CommentID, in, &out, true); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

// DeleteComment removes a comment and returns the server's message.
func (c *Client) DeleteComment(ctx context.Context, commentID string) (string, error) {
	var out struct{ envelope }
	if err := c.do(ctx, http.MethodDelete, "/comment/"+commentID, nil, &out, true); err != nil {
		return "", err
	}
	return out.Message, nil
}
