package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-taskboard-client/lists"
)

type listsResponse struct {
	envelope
	Lists []lists.List `json:"lists"`
}

type listResponse struct {
	envelope
	List lists.List `json:"list"`
}

// Lists returns the lists of a board, in server order.
func (c *Client) Lists(ctx context.Context, boardID string) ([]lists.List, error) {
	var out listsResponse
	if err := c.do(ctx, http.MethodGet, "/list/"+boardID, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Lists, nil
}

// CreateList creates a list on a board and returns the server's record.
func (c *Client) CreateList(ctx context.Context, in lists.CreateInput) (*lists.List, error) {
	var out listResponse
	if err := c.do(ctx, http.MethodPost, "/list/"+in.BoardID, in, &out, true); err != nil {
		return nil, err
	}
	return &out.List, nil
}

// UpdateList updates a list and returns the server's record.
func (c *Client) UpdateList(ctx context.Context, in lists.UpdateInput) (*lists.List, error) {
	var out listResponse
	if err := c.do(ctx, http.MethodPatch, "/list/"+in.ListID, in, &out, true); err != nil {
		return nil, err
	}
	return &out.List, nil
}

// DeleteList removes a list and returns the server's message.
func (c *Client) DeleteList(ctx context.Context, listID string) (string, error) {
	var out struct{ envelope }
	if err := c.do(ctx, http.MethodDelete, "/list/"+listID, nil, &out, true); err != nil {
		return "", err
	}
	return out.Message, nil
}
