package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	apperrors "github.com/jrsteele09/go-taskboard-client/internal/errors"
)

// TokenSource supplies the bearer token for authenticated calls. The
// session gate implements it; a missing token is a precondition failure
// and the request is never issued.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the remote access façade: one method per entity operation
// against the REST service. It owns request timeouts; retry policy lives
// with the callers (the entity cache retries reads, mutations are never
// retried).
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     zerolog.Logger
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

const defaultTimeout = 15 * time.Second

// New initializes a Client against the given base URL.
func New(baseURL string, tokens TokenSource, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[api.New] server url is required")
	}
	if tokens == nil {
		return nil, errors.New("[api.New] token source is required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     tokens,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

// envelope is the common wrapper of every server response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e envelope) ok() bool        { return e.Success }
func (e envelope) message() string { return e.Message }

type response interface {
	ok() bool
	message() string
}

// do performs one request and decodes the envelope. Authenticated calls
// resolve the bearer token first and fail fast when none is available.
func (c *Client) do(ctx context.Context, method, path string, body any, out response, authenticated bool) error {
	var token string
	if authenticated {
		var err error
		token, err = c.tokens.Token(ctx)
		if err != nil {
			return err
		}
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[api.do] encode body")
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "[api.do] build request")
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(apperrors.ErrRemote, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(apperrors.ErrRemote, "%s %s: malformed response (status %d)", method, path, resp.StatusCode)
	}

	if !out.ok() {
		msg := out.message()
		if msg == "" {
			msg = fmt.Sprintf("request failed (status %d)", resp.StatusCode)
		}
		c.logger.Debug().Str("method", method).Str("path", path).Str("request_id", requestID).Int("status", resp.StatusCode).Msg(msg)
		return errors.Wrap(apperrors.ErrRemote, msg)
	}
	return nil
}
