package mutation

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-taskboard-client/cache"
	apperrors "github.com/jrsteele09/go-taskboard-client/internal/errors"
)

// Operation performs the remote write and returns the server's payload.
type Operation func(ctx context.Context) (any, error)

// Invalidator is the slice of the entity cache the coordinator needs.
type Invalidator interface {
	InvalidateDependents(w cache.Write)
}

// Coordinator serializes a mutation's lifecycle. Invalidation happens only
// after the remote write is confirmed successful, never optimistically: a
// cached read is then never older than the last confirmed write it depends
// on, though it may be one refetch behind another client's writes.
type Coordinator struct {
	cache Invalidator

	mu      sync.Mutex
	pending map[string]struct{}
	lastErr map[string]error

	logger zerolog.Logger
}

// Option defines a function type to modify the Coordinator instance.
type Option func(*Coordinator)

// WithLogger sets the coordinator logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// New initializes a Coordinator over the entity cache.
func New(invalidator Invalidator, options ...Option) (*Coordinator, error) {
	if invalidator == nil {
		return nil, errors.New("[mutation.New] invalidator is required")
	}
	coordinator := &Coordinator{
		cache:   invalidator,
		pending: make(map[string]struct{}),
		lastErr: make(map[string]error),
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(coordinator)
	}
	return coordinator, nil
}

// Run executes one mutation invocation: pending → succeeded/failed → idle.
// A second Run with the same identity while the first is pending is
// rejected, which is how the UI's duplicate-submission guard is enforced.
// On failure the cache is untouched; the core never retries a mutation
// (resubmission is a user action). Invalidating the same key twice from
// overlapping mutations is safe because Invalidate is idempotent.
func (c *Coordinator) Run(ctx context.Context, id string, op Operation, affects []cache.Write) (any, error) {
	c.mu.Lock()
	if _, running := c.pending[id]; running {
		c.mu.Unlock()
		return nil, errors.Wrap(apperrors.ErrMutationPending, id)
	}
	c.pending[id] = struct{}{}
	delete(c.lastErr, id)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	result, err := op(ctx)
	if err != nil {
		c.mu.Lock()
		c.lastErr[id] = err
		c.mu.Unlock()
		c.logger.Debug().Str("mutation", id).Err(err).Msg("mutation failed")
		return nil, err
	}

	for _, w := range affects {
		c.cache.InvalidateDependents(w)
	}
	c.logger.Debug().Str("mutation", id).Int("affects", len(affects)).Msg("mutation succeeded")
	return result, nil
}

// IsPending reports whether a mutation with this identity is in flight,
// for disabling duplicate submission in the UI.
func (c *Coordinator) IsPending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, running := c.pending[id]
	return running
}

// Err returns the failure of the identity's last invocation, cleared when
// the next invocation starts. Used for inline error display.
func (c *Coordinator) Err(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr[id]
}
