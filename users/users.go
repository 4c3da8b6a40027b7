package users

import (
	"strings"

	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-taskboard-client/internal/errors"
)

// User is the minimal profile the server returns at login.
type User struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
}

const minPasswordLength = 8

// RegisterInput carries the fields accepted by the register endpoint.
type RegisterInput struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (in RegisterInput) Validate() error {
	if strings.TrimSpace(in.Firstname) == "" {
		return errors.Wrap(apperrors.ErrValidation, "firstname is required")
	}
	if strings.TrimSpace(in.Lastname) == "" {
		return errors.Wrap(apperrors.ErrValidation, "lastname is required")
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if len(in.Password) < minPasswordLength {
		return errors.Wrapf(apperrors.ErrValidation, "password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// LoginInput carries the fields accepted by the login endpoint.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if in.Password == "" {
		return errors.Wrap(apperrors.ErrValidation, "password is required")
	}
	return nil
}

// ValidateEmail performs the basic format check applied to every
// email-carrying input.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.Wrap(apperrors.ErrValidation, "email is required")
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return errors.Wrap(apperrors.ErrValidation, "invalid email format")
	}
	return nil
}
