package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-taskboard-client/members"
)

type membersResponse struct {
	envelope
	Members []members.Member `json:"members"`
}

type memberResponse struct {
	envelope
	Member members.Member `json:"member"`
}

// Members returns the memberships of a board, in server order.
func (c *Client) Members(ctx context.Context, boardID string) ([]members.Member, error) {
	var out membersResponse
	if err := c.do(ctx, http.MethodGet, "/member/"+boardID, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Members, nil
}

// CreateMember adds a user to a board and returns the server's message.
func (c *Client) CreateMember(ctx context.Context, in members.CreateInput) (string, error) {
	var out struct{ envelope }
	if err := c.do(ctx, http.MethodPost, "/member/", in, &out, true); err != nil {
		return "", err
	}
	return out.Message, nil
}

// UpdateMember changes a membership's role and returns the server's record.
func (c *Client) UpdateMember(ctx context.Context, in members.UpdateInput) (*members.Member, error) {
	var out memberResponse
	if err := c.do(ctx, http.MethodPatch, "/member/"+in.MemberID, in, &out, true); err != nil {
		return nil, err
	}
	return &out.Member, nil
}

// DeleteMember removes a membership and returns the server's message.
func (c *Client) DeleteMember(ctx context.Context, memberID string) (string, error) {
	var out struct{ envelope }
	if err := c.do(ctx, http.MethodDelete, "/member/"+memberID, nil, &out, true); err != nil {
		return "", err
	}
	return out.Message, nil
}
