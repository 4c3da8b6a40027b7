package tasks

import (
	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-taskboard-client/internal/errors"
)

// Task belongs to a list and carries scheduling metadata.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Position    int    `json:"position"`
	DueDate     string `json:"dueDate"`
	ListID      string `json:"listId"`
}

const maxTitleLength = 100

// CreateInput carries the fields accepted by the create-task endpoint.
// The list ID is routing information and is not serialized in the body.
type CreateInput struct {
	ListID      string `json:"-"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Position    int    `json:"position"`
	DueDate     string `json:"dueDate"`
}

func (in CreateInput) Validate() error {
	if in.ListID == "" {
		return errors.Wrap(apperrors.ErrValidation, "list id is required")
	}
	if in.Title == "" {
		return errors.Wrap(apperrors.ErrValidation, "title required")
	}
	if len(in.Title) > maxTitleLength {
		return errors.Wrapf(apperrors.ErrValidation, "maximum %d characters allowed", maxTitleLength)
	}
	return nil
}
