// Package client assembles the SDK: the session gate over the encrypted
// credential store, the entity cache with its invalidation graph, the
// mutation coordinator, and the remote access façade. Screens talk to this
// package only.
package client

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-taskboard-client/api"
	"github.com/jrsteele09/go-taskboard-client/auth"
	"github.com/jrsteele09/go-taskboard-client/cache"
	"github.com/jrsteele09/go-taskboard-client/credentials"
	"github.com/jrsteele09/go-taskboard-client/credentials/securefile"
	"github.com/jrsteele09/go-taskboard-client/internal/config"
	"github.com/jrsteele09/go-taskboard-client/mutation"
	"github.com/jrsteele09/go-taskboard-client/session"
	"github.com/jrsteele09/go-taskboard-client/users"
)

// Client is the SDK entry point.
type Client struct {
	api       *api.Client
	cache     *cache.Store
	mutations *mutation.Coordinator
	gate      *session.Gate
	auth      *auth.Service
	logger    zerolog.Logger
}

// Deps carries pre-built dependencies for tests and embedders that wire
// their own storage or transport.
type Deps struct {
	API         *api.Client
	Cache       *cache.Store
	Coordinator *mutation.Coordinator
	Gate        *session.Gate
	Auth        *auth.Service
}

// New builds a fully wired client from configuration.
func New(cfg *config.Config, logger zerolog.Logger) (*Client, error) {
	storage, err := securefile.New(cfg.StoreDir, []byte(cfg.StoreSecret))
	if err != nil {
		return nil, errors.Wrap(err, "[client.New] secure storage")
	}
	store, err := credentials.NewStore(storage, credentials.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "[client.New] credential store")
	}
	gate, err := session.NewGate(store, session.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "[client.New] session gate")
	}
	apiClient, err := api.New(cfg.APIBaseURL, gate, api.WithTimeout(cfg.RequestTimeout), api.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "[client.New] api client")
	}
	cacheStore := cache.New(
		cache.WithRetryPolicy(cfg.FetchRetries, cfg.FetchBackoff),
		cache.WithFreshFor(cfg.FreshFor),
		cache.WithLogger(logger),
	)
	coordinator, err := mutation.New(cacheStore, mutation.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "[client.New] mutation coordinator")
	}
	authService, err := auth.NewService(apiClient, store, gate,
		auth.WithSessionTTL(cfg.SessionTTL), auth.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "[client.New] auth service")
	}

	return NewWithDeps(Deps{
		API:         apiClient,
		Cache:       cacheStore,
		Coordinator: coordinator,
		Gate:        gate,
		Auth:        authService,
	}, logger)
}

// NewWithDeps builds a client from pre-built dependencies.
func NewWithDeps(deps Deps, logger zerolog.Logger) (*Client, error) {
	if deps.API == nil || deps.Cache == nil || deps.Coordinator == nil || deps.Gate == nil || deps.Auth == nil {
		return nil, errors.New("[client.NewWithDeps] all dependencies are required")
	}
	return &Client{
		api:       deps.API,
		cache:     deps.Cache,
		mutations: deps.Coordinator,
		gate:      deps.Gate,
		auth:      deps.Auth,
		logger:    logger,
	}, nil
}

// Resolve settles the session status at process start. No screen group
// should be rendered before this returns.
func (c *Client) Resolve(ctx context.Context) session.Status {
	return c.gate.Resolve(ctx)
}

// Status returns the current session status.
func (c *Client) Status() session.Status {
	return c.gate.Status()
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, in users.RegisterInput) (string, error) {
	return c.auth.Register(ctx, in)
}

// Login authenticates and persists the session credential.
func (c *Client) Login(ctx context.Context, in users.LoginInput) (*session.UserData, error) {
	return c.auth.Login(ctx, in)
}

// Logout destroys the session credential.
func (c *Client) Logout(ctx context.Context) error {
	return c.auth.Logout(ctx)
}

// ForgotPassword starts a password reset.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	return c.auth.ForgotPassword(ctx, email)
}

// DeleteAccount removes the account and the local session.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.auth.DeleteAccount(ctx)
}

// CurrentUser returns the persisted profile.
func (c *Client) CurrentUser(ctx context.Context) (*session.UserData, error) {
	return c.auth.CurrentUser(ctx)
}

// Inspect exposes a cache entry's state for rendering loading, error,
// empty, and data views.
func (c *Client) Inspect(key cache.Key) cache.Snapshot {
	return c.cache.Snapshot(key)
}

// IsPending reports whether a mutation identity is in flight.
func (c *Client) IsPending(mutationID string) bool {
	return c.mutations.IsPending(mutationID)
}

// MutationErr returns the last failure of a mutation identity.
func (c *Client) MutationErr(mutationID string) error {
	return c.mutations.Err(mutationID)
}
