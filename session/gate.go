package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-taskboard-client/credentials"
	apperrors "github.com/jrsteele09/go-taskboard-client/internal/errors"
)

// Gate derives the authentication status from the credential store and is
// its single writer. Screens never see the store directly; they read the
// Gate's status and the navigation layer renders neither the protected nor
// the unprotected group until Resolve has settled.
type Gate struct {
	store *credentials.Store

	mu       sync.Mutex
	status   Status
	resolved bool
	inflight chan struct{}

	nowTime func() time.Time
	logger  zerolog.Logger
}

// GateOption defines a function type to modify the Gate instance.
type GateOption func(*Gate)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) GateOption {
	return func(g *Gate) {
		g.nowTime = nowFunc
	}
}

// WithLogger sets the gate logger.
func WithLogger(logger zerolog.Logger) GateOption {
	return func(g *Gate) {
		g.logger = logger
	}
}

// NewGate initializes a Gate over the credential store.
func NewGate(store *credentials.Store, options ...GateOption) (*Gate, error) {
	if store == nil {
		return nil, errors.New("[NewGate] credential store is required")
	}
	gate := &Gate{
		store:   store,
		status:  StatusUnknown,
		nowTime: time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(gate)
	}
	return gate, nil
}

// Status returns the current authentication status.
func (g *Gate) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Resolve settles the authentication status from the credential store.
// Concurrent callers are coalesced onto a single resolution so two
// resolutions can never disagree. It never returns an error: an unreadable
// or expired credential is not trusted and resolves to unauthenticated.
func (g *Gate) Resolve(ctx context.Context) Status {
	g.mu.Lock()
	if g.resolved {
		status := g.status
		g.mu.Unlock()
		return status
	}
	if g.inflight != nil {
		wait := g.inflight
		g.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			// Abandoned wait still fail-closed: the caller must not
			// treat an unsettled gate as authenticated.
			return StatusUnauthenticated
		}
		return g.Status()
	}
	done := make(chan struct{})
	g.inflight = done
	g.mu.Unlock()

	status := g.check(ctx)

	g.mu.Lock()
	g.status = status
	g.resolved = true
	g.inflight = nil
	g.mu.Unlock()
	close(done)

	g.logger.Info().Stringer("status", status).Msg("session resolved")
	return status
}

// check performs the actual credential inspection. Fail-closed throughout.
func (g *Gate) check(ctx context.Context) Status {
	exists, err := g.store.Exists(ctx, credentials.SessionRecord)
	if err != nil {
		g.logger.Warn().Err(err).Msg("credential probe failed, resolving unauthenticated")
		return StatusUnauthenticated
	}
	if !exists {
		return StatusUnauthenticated
	}

	data, err := g.readUserData(ctx)
	if err != nil || data == nil {
		return StatusUnauthenticated
	}

	if tokenExpired(data.Token, g.nowTime()) {
		g.logger.Info().Msg("stored bearer token expired, clearing credential")
		if err := g.store.Remove(ctx, credentials.SessionRecord); err != nil {
			g.logger.Error().Err(err).Msg("failed to remove expired credential")
		}
		return StatusUnauthenticated
	}

	return StatusAuthenticated
}

// SetAuthenticated transitions the status after a completed login or
// logout. It is idempotent and must not be called before Resolve has
// completed once.
func (g *Gate) SetAuthenticated(authenticated bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.resolved {
		return errors.Wrap(apperrors.ErrNotResolved, "SetAuthenticated before Resolve")
	}
	if authenticated {
		g.status = StatusAuthenticated
	} else {
		g.status = StatusUnauthenticated
	}
	return nil
}

// Token sources the bearer token for the remote access façade. A missing or
// unreadable credential is a precondition failure reported before any
// request is issued.
func (g *Gate) Token(ctx context.Context) (string, error) {
	data, err := g.readUserData(ctx)
	if err != nil {
		return "", err
	}
	if data == nil || data.Token == "" {
		return "", errors.Wrap(apperrors.ErrAuthRequired, "no bearer token")
	}
	return data.Token, nil
}

// UserData returns the persisted profile, or ErrAuthRequired when absent.
func (g *Gate) UserData(ctx context.Context) (*UserData, error) {
	data, err := g.readUserData(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errors.Wrap(apperrors.ErrAuthRequired, "no stored session")
	}
	return data, nil
}

func (g *Gate) readUserData(ctx context.Context) (*UserData, error) {
	value, ok, err := g.store.Read(ctx, credentials.SessionRecord)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var data UserData
	if err := json.Unmarshal([]byte(value), &data); err != nil {
		g.logger.Warn().Msg("stored session payload unreadable")
		return nil, nil
	}
	return &data, nil
}

// tokenExpired inspects a JWT's exp claim without verifying its signature.
// The server remains the authority; this only lets the client drop a token
// it already knows is dead. Opaque (non-JWT) tokens pass through.
func tokenExpired(raw string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
