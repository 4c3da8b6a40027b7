package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-taskboard-client/api"
	"github.com/jrsteele09/go-taskboard-client/credentials"
	"github.com/jrsteele09/go-taskboard-client/session"
	"github.com/jrsteele09/go-taskboard-client/users"
)

const defaultSessionTTL = 365 * 24 * time.Hour

// Service drives the authentication flows: it talks to the remote façade,
// persists the credential, and is the only component allowed to flip the
// session gate.
type Service struct {
	api        *api.Client
	store      *credentials.Store
	gate       *session.Gate
	sessionTTL time.Duration
	nowTime    func() time.Time
	logger     zerolog.Logger
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithSessionTTL sets the lifetime of a persisted login credential.
func WithSessionTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.sessionTTL = ttl
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService initializes a Service with required dependencies.
func NewService(apiClient *api.Client, store *credentials.Store, gate *session.Gate, options ...ServiceOption) (*Service, error) {
	if apiClient == nil {
		return nil, errors.New("[auth.NewService] api client is required")
	}
	if store == nil {
		return nil, errors.New("[auth.NewService] credential store is required")
	}
	if gate == nil {
		return nil, errors.New("[auth.NewService] session gate is required")
	}
	service := &Service{
		api:        apiClient,
		store:      store,
		gate:       gate,
		sessionTTL: defaultSessionTTL,
		nowTime:    time.Now,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(service)
	}
	return service, nil
}

// Register creates a new account. No credential is persisted; the user
// logs in afterwards.
func (s *Service) Register(ctx context.Context, in users.RegisterInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	return s.api.Register(ctx, in)
}

// Login authenticates, persists the credential with the configured expiry,
// and flips the gate. A failed save is a failed login: the caller must not
// be treated as authenticated when the credential did not persist.
func (s *Service) Login(ctx context.Context, in users.LoginInput) (*session.UserData, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	result, err := s.api.Login(ctx, in)
	if err != nil {
		s.logger.Warn().Str("email", in.Email).Err(err).Msg("login failed")
		return nil, err
	}
	if result.Token == "" {
		return nil, errors.New("[auth.Login] missing token in login response")
	}

	expiresAt := s.nowTime().Add(s.sessionTTL)
	data := session.UserData{
		Token:     result.Token,
		UserID:    result.User.ID,
		Email:     result.User.Email,
		Firstname: result.User.Firstname,
		ExpiresAt: expiresAt,
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "[auth.Login] encode session payload")
	}

	opts := credentials.SaveOptions{ExpiresAt: &expiresAt, Secure: true}
	if err := s.store.Save(ctx, credentials.SessionRecord, string(payload), opts); err != nil {
		return nil, errors.Wrap(err, "[auth.Login] failed to save authentication data")
	}

	if err := s.gate.SetAuthenticated(true); err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", data.Email).Msg("logged in")
	return &data, nil
}

// Logout removes the credential and flips the gate. Logging out while
// already logged out succeeds.
func (s *Service) Logout(ctx context.Context) error {
	exists, err := s.store.Exists(ctx, credentials.SessionRecord)
	if err == nil && !exists {
		s.logger.Debug().Msg("no stored session, already logged out")
		return s.gate.SetAuthenticated(false)
	}

	if err := s.store.Remove(ctx, credentials.SessionRecord); err != nil {
		return errors.Wrap(err, "[auth.Logout] failed to clear session")
	}
	return s.gate.SetAuthenticated(false)
}

// ForgotPassword starts a password reset and returns the server's message.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := users.ValidateEmail(email); err != nil {
		return "", err
	}
	return s.api.ForgotPassword(ctx, email)
}

// DeleteAccount removes the account remotely, then destroys the local
// credential and flips the gate.
func (s *Service) DeleteAccount(ctx context.Context) error {
	if err := s.api.DeleteAccount(ctx); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, credentials.SessionRecord); err != nil {
		return errors.Wrap(err, "[auth.DeleteAccount] failed to clear session")
	}
	return s.gate.SetAuthenticated(false)
}

// CurrentUser returns the persisted profile of the authenticated user.
func (s *Service) CurrentUser(ctx context.Context) (*session.UserData, error) {
	return s.gate.UserData(ctx)
}
