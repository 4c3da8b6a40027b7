package credentials

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	apperrors "github.com/jrsteele09/go-taskboard-client/internal/errors"
)

// SessionRecord is the logical name of the single credential the client
// persists. No other entity state survives a process restart.
const SessionRecord = "session"

const storageKeyPrefix = "credential-"

// Record is the persisted credential envelope. A record with ExpiresAt in
// the past is treated as absent; it is never mutated in place, only
// replaced wholesale.
type Record struct {
	Value     string     `json:"value"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Secure    bool       `json:"secure"`
}

// Expired reports whether the record's expiry has passed.
func (r Record) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}

// SaveOptions configures a Save call.
type SaveOptions struct {
	ExpiresAt *time.Time
	Secure    bool
}

// Store persists named expiring credentials over a SecretStorage primitive.
// Operations on the store are serialized so a read never observes a torn
// write.
type Store struct {
	storage SecretStorage
	mu      sync.Mutex
	nowTime func() time.Time
	logger  zerolog.Logger
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// WithLogger sets the store logger.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore initializes a Store over the given secure storage primitive.
func NewStore(storage SecretStorage, options ...StoreOption) (*Store, error) {
	if storage == nil {
		return nil, errors.New("[NewStore] storage is required")
	}
	store := &Store{
		storage: storage,
		nowTime: time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(store)
	}
	return store, nil
}

// Save persists a credential record, replacing any previous record with the
// same name. A failed save must not be treated as logged in by callers.
func (s *Store) Save(ctx context.Context, name, value string, opts SaveOptions) error {
	if name == "" {
		return errors.Wrap(apperrors.ErrValidation, "credential name is required")
	}

	record := Record{
		Value:     value,
		CreatedAt: s.nowTime(),
		ExpiresAt: opts.ExpiresAt,
		Secure:    opts.Secure,
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(apperrors.ErrStorage, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, storageKeyPrefix+name, string(payload)); err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to save credential")
		return errors.Wrapf(apperrors.ErrStorage, "save %q: %v", name, err)
	}
	return nil
}

// Read returns the credential value, or absent. An expired record is deleted
// as a side effect and reported absent. A corrupt record reads as absent,
// never as a fatal error.
func (s *Store) Read(ctx context.Context, name string) (string, bool, error) {
	if name == "" {
		return "", false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.storage.Get(ctx, storageKeyPrefix+name)
	if err != nil {
		return "", false, errors.Wrapf(apperrors.ErrStorage, "read %q: %v", name, err)
	}
	if !ok {
		return "", false, nil
	}

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logger.Warn().Str("name", name).Msg("corrupt credential record treated as absent")
		return "", false, nil
	}

	if record.Expired(s.nowTime()) {
		if err := s.storage.Delete(ctx, storageKeyPrefix+name); err != nil {
			s.logger.Error().Err(err).Str("name", name).Msg("failed to delete expired credential")
		}
		return "", false, nil
	}

	return record.Value, true, nil
}

// Remove deletes the named credential. Absence is not an error.
func (s *Store) Remove(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(ctx, storageKeyPrefix+name); err != nil {
		return errors.Wrapf(apperrors.ErrStorage, "remove %q: %v", name, err)
	}
	return nil
}

// Exists probes for the named credential without deserializing its payload.
// It deliberately does not trigger expiry deletion, keeping it a cheap fast
// path; only Read does.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.storage.Get(ctx, storageKeyPrefix+name)
	if err != nil {
		return false, errors.Wrapf(apperrors.ErrStorage, "exists %q: %v", name, err)
	}
	return ok, nil
}
