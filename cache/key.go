package cache

import (
	"context"
	"fmt"
	"time"
)

// Kind names one cached entity collection.
type Kind string

const (
	KindBoards   Kind = "boards"
	KindLists    Kind = "lists"
	KindTasks    Kind = "tasks"
	KindComments Kind = "comments"
	KindMembers  Kind = "members"
)

// Key addresses one cached collection: the entity kind plus the id of the
// parent record scoping it. The boards collection has no scope.
type Key struct {
	Kind    Kind
	ScopeID string
}

func (k Key) String() string {
	if k.ScopeID == "" {
		return string(k.Kind)
	}
	return fmt.Sprintf("%s[%s]", k.Kind, k.ScopeID)
}

// State is the lifecycle state of a cache entry.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateFresh
	StateStale
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	case StateError:
		return "error"
	default:
		return "empty"
	}
}

// FetchFunc loads the data for one key from the remote access façade.
type FetchFunc func(ctx context.Context) (any, error)

// Snapshot is a point-in-time view of an entry for UI consumption: stale or
// errored entries still expose their last data so screens never flicker to
// empty while a refetch is pending.
type Snapshot struct {
	State     State
	Data      any
	FetchedAt time.Time

	// HasData distinguishes "refresh failed while data exists" from a
	// never-loaded error.
	HasData     bool
	ErrorDetail error
}
