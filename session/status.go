package session

// Status is the tri-state authentication status derived from the credential
// store. Exactly one authoritative instance exists per running process,
// owned by the Gate; it is recomputed wholesale, never partially updated.
type Status int

const (
	// StatusUnknown is the initial, pre-resolution state. It is revisited
	// only at process start, never thereafter.
	StatusUnknown Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}
