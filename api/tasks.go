package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-taskboard-client/tasks"
)

type tasksResponse struct {
	envelope
	Tasks []tasks.Task `json:"tasks"`
}

type taskResponse struct {
	envelope
	Task tasks.Task `json:"task"`
}

// Tasks returns the tasks of a list, in server order.
func (c *Client) Tasks(ctx context.Context, listID string) ([]tasks.Task, error) {
	var out tasksResponse
	if err := c.do(ctx, http.MethodGet, "/task/"+listID, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// CreateTask creates a task on a list and returns the server's record.
func (c *Client) CreateTask(ctx context.Context, in tasks.CreateInput) (*tasks.Task, error) {
	var out taskResponse
	if err := c.do(ctx, http.MethodPost, "/task/"+in.ListID, in, &out, true); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

// UpdateTask applies a minimal patch to a task and returns the server's
// record.
func (c *Client) UpdateTask(ctx context.Context, taskID string, patch tasks.Patch) (*tasks.Task, error) {
	var out taskResponse
	if err := c.do(ctx, http.MethodPatch, "/task/"+taskID, patch, &out, true); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

// DeleteTask removes a task and returns the server's message.
func (c *Client) DeleteTask(ctx context.Context, taskID string) (string, error) {
	var out struct{ envelope }
	if err := c.do(ctx, http.MethodDelete, "/task/"+taskID, nil, &out, true); err != nil {
		return "", err
	}
	return out.Message, nil
}
