package credentials

import "context"

// SecretStorage is the secure storage primitive the credential store is
// built on. It is exclusively owned by the Store; no other component talks
// to it directly.
type SecretStorage interface {
	// Set persists a value under a key, replacing any existing value.
	Set(ctx context.Context, key, value string) error

	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
