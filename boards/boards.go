package boards

import (
	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-taskboard-client/internal/errors"
)

// Owner identifies the user that created a board.
type Owner struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
}

// Board is a top-level container of lists.
type Board struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	BgColor   string `json:"bg_color"`
	Owner     Owner  `json:"user"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

const maxTitleLength = 100

// CreateInput carries the fields accepted by the create-board endpoint.
type CreateInput struct {
	Title   string `json:"title"`
	BgColor string `json:"bg_color"`
}

// Validate checks the input before any network call is made.
func (in CreateInput) Validate() error {
	return validateTitle(in.Title)
}

// UpdateInput carries the fields accepted by the update-board endpoint.
// The ID is routing information and is not serialized in the body.
type UpdateInput struct {
	ID      string `json:"-"`
	Title   string `json:"title"`
	BgColor string `json:"bg_color"`
}

func (in UpdateInput) Validate() error {
	if in.ID == "" {
		return errors.Wrap(apperrors.ErrValidation, "board id is required")
	}
	return validateTitle(in.Title)
}

func validateTitle(title string) error {
	if title == "" {
		return errors.Wrap(apperrors.ErrValidation, "title required")
	}
	if len(title) > maxTitleLength {
		return errors.Wrapf(apperrors.ErrValidation, "%d characters maximum allowed", maxTitleLength)
	}
	return nil
}
