package comments

import (
	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-taskboard-client/internal/errors"
)

// Comment is a note attached to a task.
type Comment struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CreateInput carries the fields accepted by the create-comment endpoint.
type CreateInput struct {
	TaskID  string `json:"-"`
	Content string `json:"content"`
}

func (in CreateInput) Validate() error {
	if in.TaskID == "" {
		return errors.Wrap(apperrors.ErrValidation, "task id is required")
	}
	if in.Content == "" {
		return errors.Wrap(apperrors.ErrValidation, "content required")
	}
	return nil
}

// UpdateInput carries the fields accepted by the update-comment endpoint.
// TaskID is not sent to the server; it scopes cache invalidation.
type UpdateInput struct {
	CommentID string `json:"-"`
	TaskID    string `json:"-"`
	Content   string `json:"content"`
}

func (in UpdateInput) Validate() error {
	if in.CommentID == "" {
		return errors.Wrap(apperrors.ErrValidation, "comment id is required")
	}
	if in.Content == "" {
		return errors.Wrap(apperrors.ErrValidation, "content required")
	}
	return nil
}
