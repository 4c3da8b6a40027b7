package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	apperrors "github.com/jrsteele09/go-taskboard-client/internal/errors"
)

// Store is the in-memory, key-addressed read cache. Entries are created on
// first read, marked stale by the mutation coordinator, and refetched on
// the next read after going stale. Concurrent reads of one key are
// coalesced onto a single fetch; that de-duplication is the store's key
// correctness property.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry

	retries  int
	backoff  time.Duration
	freshFor time.Duration
	nowTime  func() time.Time
	logger   zerolog.Logger
}

type entry struct {
	state     State
	data      any
	hasData   bool
	fetchedAt time.Time
	errDetail error
	flight    *flight
}

// flight tracks one in-flight fetch and the callers attached to it.
type flight struct {
	done    chan struct{}
	data    any
	err     error
	waiters int
	cancel  context.CancelFunc
	revert  State // state restored if the fetch is cancelled
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithRetryPolicy sets the read retry budget. Retries apply only to reads;
// mutations are never retried by the core.
func WithRetryPolicy(retries int, backoff time.Duration) StoreOption {
	return func(s *Store) {
		s.retries = retries
		s.backoff = backoff
	}
}

// WithFreshFor sets how long a fresh entry stays fresh before a read treats
// it as stale. Zero disables time-based staleness.
func WithFreshFor(d time.Duration) StoreOption {
	return func(s *Store) {
		s.freshFor = d
	}
}

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

const (
	defaultRetries  = 2
	defaultBackoff  = time.Second
	defaultFreshFor = 5 * time.Minute
)

// New initializes an empty Store.
func New(options ...StoreOption) *Store {
	store := &Store{
		entries:  make(map[Key]*entry),
		retries:  defaultRetries,
		backoff:  defaultBackoff,
		freshFor: defaultFreshFor,
		nowTime:  time.Now,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(store)
	}
	return store
}

// Get returns the cached data for key, fetching through fetch when the
// entry is empty, stale, errored, or past its freshness window. A caller
// arriving while a fetch is in flight attaches to it instead of issuing a
// new one; all attached callers observe the same resolved value. Collection
// order is whatever the server returned; the cache never re-sorts.
func (s *Store) Get(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	s.mu.Lock()
	e := s.entry(key)

	if e.state == StateFresh && !s.pastFreshness(e) {
		data := e.data
		s.mu.Unlock()
		return data, nil
	}

	if e.state == StateLoading {
		f := e.flight
		f.waiters++
		s.mu.Unlock()
		return s.wait(ctx, key, f)
	}

	revert := e.state
	if e.state == StateFresh {
		// Aged out of the freshness window: behaves as stale from here on.
		e.state = StateStale
		revert = StateStale
	}

	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f := &flight{
		done:    make(chan struct{}),
		cancel:  cancel,
		revert:  revert,
		waiters: 1,
	}
	e.state = StateLoading
	e.flight = f
	s.mu.Unlock()

	go s.run(fctx, key, f, fetch)
	return s.wait(ctx, key, f)
}

// Invalidate marks a fresh entry stale. It is idempotent: empty, loading,
// stale, and errored entries are left alone. Data is not evicted, so stale
// data remains displayable while a refetch is pending.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.state != StateFresh {
		return
	}
	e.state = StateStale
	s.logger.Debug().Stringer("key", key).Msg("cache key invalidated")
}

// InvalidateDependents applies the static dependency graph for a confirmed
// write, invalidating every dependent key.
func (s *Store) InvalidateDependents(w Write) {
	for _, key := range DependentsOf(w) {
		s.Invalidate(key)
	}
}

// Snapshot returns a point-in-time view of an entry for rendering.
func (s *Store) Snapshot(key Key) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return Snapshot{State: StateEmpty}
	}
	state := e.state
	if state == StateFresh && s.pastFreshness(e) {
		state = StateStale
	}
	return Snapshot{
		State:       state,
		Data:        e.data,
		FetchedAt:   e.fetchedAt,
		HasData:     e.hasData,
		ErrorDetail: e.errDetail,
	}
}

// entry returns the tracked entry for key, creating it empty on first use.
// Caller must hold s.mu.
func (s *Store) entry(key Key) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{state: StateEmpty}
		s.entries[key] = e
	}
	return e
}

func (s *Store) pastFreshness(e *entry) bool {
	return s.freshFor > 0 && s.nowTime().Sub(e.fetchedAt) > s.freshFor
}

// run executes the fetch with the read retry budget and settles the entry.
func (s *Store) run(ctx context.Context, key Key, f *flight, fetch FetchFunc) {
	var data any
	var err error

	attempts := 0
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(s.backoff):
			case <-ctx.Done():
			}
		}
		if ctx.Err() != nil {
			break
		}
		attempts++
		data, err = fetch(ctx)
		if err == nil || ctx.Err() != nil {
			break
		}
		s.logger.Debug().Stringer("key", key).Err(err).Int("attempt", attempts).Msg("fetch failed")
	}

	cancelled := ctx.Err() != nil
	if err != nil && !cancelled {
		err = errors.Wrapf(apperrors.ErrFetchExhausted, "fetch %s failed after %d attempts: %v", key, attempts, err)
	}
	s.settle(key, f, data, err, cancelled)
}

// settle records the fetch outcome. A cancelled fetch reverts the entry to
// its pre-loading state rather than error, so an abandoned read never
// corrupts cache state. A failed refresh keeps previously fresh data.
func (s *Store) settle(key Key, f *flight, data any, err error, cancelled bool) {
	s.mu.Lock()
	e := s.entries[key]
	if e != nil && e.flight == f {
		switch {
		case cancelled:
			e.state = f.revert
		case err != nil:
			e.state = StateError
			e.errDetail = err
		default:
			e.state = StateFresh
			e.data = data
			e.hasData = true
			e.fetchedAt = s.nowTime()
			e.errDetail = nil
		}
		e.flight = nil
	}
	s.mu.Unlock()

	f.data = data
	f.err = err
	if cancelled && f.err == nil {
		f.err = context.Canceled
	}
	close(f.done)
}

// wait blocks until the flight settles or the caller's context ends. A
// departing caller detaches; the last one to leave cancels the fetch so no
// work is wasted on a result nobody will read.
func (s *Store) wait(ctx context.Context, key Key, f *flight) (any, error) {
	select {
	case <-f.done:
		return f.data, f.err
	case <-ctx.Done():
		s.detach(f)
		return nil, ctx.Err()
	}
}

func (s *Store) detach(f *flight) {
	s.mu.Lock()
	f.waiters--
	last := f.waiters == 0
	s.mu.Unlock()

	if last {
		f.cancel()
	}
}
