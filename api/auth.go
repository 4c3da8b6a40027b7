package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-taskboard-client/users"
)

const (
	registerPath       = "/auth/register"
	loginPath          = "/auth/login"
	forgotPasswordPath = "/auth/forgot-password"
	deleteUserPath     = "/user/delete"
)

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token string
	User  users.User
}

type loginResponse struct {
	envelope
	Token string     `json:"token"`
	User  users.User `json:"user"`
}

// Register creates a new account and returns the server's message.
func (c *Client) Register(ctx context.Context, in users.RegisterInput) (string, error) {
	var out struct{ envelope }
	if err := c.do(ctx, http.MethodPost, registerPath, in, &out, false); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Login exchanges credentials for a bearer token and the user's profile.
func (c *Client) Login(ctx context.Context, in users.LoginInput) (*LoginResult, error) {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, loginPath, in, &out, false); err != nil {
		return nil, err
	}
	return &LoginResult{Token: out.Token, User: out.User}, nil
}

// ForgotPassword starts a password reset and returns the server's message.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}
	var out struct{ envelope }
	if err := c.do(ctx, http.MethodPost, forgotPasswordPath, body, &out, false); err != nil {
		return "", err
	}
	return out.Message, nil
}

// DeleteAccount removes the authenticated user's account.
func (c *Client) DeleteAccount(ctx context.Context) error {
	var out struct{ envelope }
	return c.do(ctx, http.MethodDelete, deleteUserPath, nil, &out, true)
}
