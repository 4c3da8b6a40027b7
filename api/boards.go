package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-taskboard-client/boards"
)

type boardsResponse struct {
	envelope
	Boards []boards.Board `json:"boards"`
}

type boardResponse struct {
	envelope
	Board boards.Board `json:"board"`
}

// Boards returns all boards visible to the authenticated user, in server
// order.
func (c *Client) Boards(ctx context.Context) ([]boards.Board, error) {
	var out boardsResponse
	if err := c.do(ctx, http.MethodGet, "/board/", nil, &out, true); err != nil {
		return nil, err
	}
	return out.Boards, nil
}

// CreateBoard creates a board and returns the server's record.
func (c *Client) CreateBoard(ctx context.Context, in boards.CreateInput) (*boards.Board, error) {
	var out boardResponse
	if err := c.do(ctx, http.MethodPost, "/board/", in, &out, true); err != nil {
		return nil, err
	}
	return &out.Board, nil
}

// UpdateBoard updates a board and returns the server's record.
func (c *Client) UpdateBoard(ctx context.Context, in boards.UpdateInput) (*boards.Board, error) {
	var out boardResponse
	if err := c.do(ctx, http.MethodPatch, "/board/"+in.ID, in, &out, true); err != nil {
		return nil, err
	}
	return &out.Board, nil
}

// DeleteBoard removes a board and returns the server's message.
func (c *Client) DeleteBoard(ctx context.Context, boardID string) (string, error) {
	var out struct{ envelope }
	if err := c.do(ctx, http.MethodDelete, "/board/"+boardID, nil, &out, true); err != nil {
		return "", err
	}
	return out.Message, nil
}
