package lists

import (
	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-taskboard-client/internal/errors"
)

// List is an ordered column of tasks within a board.
type List struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
	Status   string `json:"status"`
	BoardID  string `json:"boardId"`
}

const (
	minTitleLength = 2
	maxTitleLength = 100
)

// CreateInput carries the fields accepted by the create-list endpoint.
// The board ID is routing information and is not serialized in the body.
type CreateInput struct {
	BoardID  string `json:"-"`
	Title    string `json:"title"`
	Position int    `json:"position"`
	Status   string `json:"status"`
}

func (in CreateInput) Validate() error {
	if in.BoardID == "" {
		return errors.Wrap(apperrors.ErrValidation, "board id is required")
	}
	return validateTitle(in.Title)
}

// UpdateInput carries the fields accepted by the update-list endpoint.
// BoardID is not sent to the server; it scopes cache invalidation.
type UpdateInput struct {
	ListID   string `json:"-"`
	BoardID  string `json:"-"`
	Title    string `json:"title"`
	Position int    `json:"position"`
	Status   string `json:"status"`
}

func (in UpdateInput) Validate() error {
	if in.ListID == "" {
		return errors.Wrap(apperrors.ErrValidation, "list id is required")
	}
	return validateTitle(in.Title)
}

func validateTitle(title string) error {
	if title == "" {
		return errors.Wrap(apperrors.ErrValidation, "title required")
	}
	if len(title) < minTitleLength {
		return errors.Wrapf(apperrors.ErrValidation, "minimum %d characters required", minTitleLength)
	}
	if len(title) > maxTitleLength {
		return errors.Wrapf(apperrors.ErrValidation, "maximum %d characters allowed", maxTitleLength)
	}
	return nil
}
