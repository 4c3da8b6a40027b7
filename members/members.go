package members

import (
	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-taskboard-client/internal/errors"
	"github.com/jrsteele09/go-taskboard-client/users"
)

// MemberUser identifies the account behind a board membership.
type MemberUser struct {
	UserID    string `json:"userId"`
	Firstname string `json:"firstname"`
	Email     string `json:"email"`
}

// Member is a user's membership of a board.
type Member struct {
	MemberID         string     `json:"memberId"`
	BoardID          string     `json:"boardId"`
	User             MemberUser `json:"user"`
	Role             string     `json:"role"`
	BoardOwnerUserID string     `json:"boardOwnerUserId"`
}

// CreateInput carries the fields accepted by the create-member endpoint.
type CreateInput struct {
	BoardID   string `json:"board_id"`
	UserEmail string `json:"userEmail"`
	Role      string `json:"role"`
}

func (in CreateInput) Validate() error {
	if in.BoardID == "" {
		return errors.Wrap(apperrors.ErrValidation, "board id is required")
	}
	if err := users.ValidateEmail(in.UserEmail); err != nil {
		return err
	}
	if in.Role == "" {
		return errors.Wrap(apperrors.ErrValidation, "role required")
	}
	return nil
}

// UpdateInput carries the fields accepted by the update-member endpoint.
// BoardID is not sent to the server; it scopes cache invalidation.
type UpdateInput struct {
	MemberID string `json:"-"`
	BoardID  string `json:"-"`
	Role     string `json:"role"`
}

func (in UpdateInput) Validate() error {
	if in.MemberID == "" {
		return errors.Wrap(apperrors.ErrValidation, "member id is required")
	}
	if in.Role == "" {
		return errors.Wrap(apperrors.ErrValidation, "role required")
	}
	return nil
}
