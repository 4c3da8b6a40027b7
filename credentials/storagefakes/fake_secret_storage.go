package storagefakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-taskboard-client/credentials"
)

var _ credentials.SecretStorage = (*FakeSecretStorage)(nil)

// FakeSecretStorage is an in-memory SecretStorage with injectable failures
// and operation counters for tests.
type FakeSecretStorage struct {
	lock   sync.RWMutex
	values map[string]string

	SetErr    error
	GetErr    error
	DeleteErr error

	SetCalls    int
	GetCalls    int
	DeleteCalls int
}

func NewFakeSecretStorage() *FakeSecretStorage {
	return &FakeSecretStorage{
		values: make(map[string]string),
	}
}

func (f *FakeSecretStorage) Set(_ context.Context, key, value string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.SetCalls++
	if f.SetErr != nil {
		return f.SetErr
	}
	f.values[key] = value
	return nil
}

func (f *FakeSecretStorage) Get(_ context.Context, key string) (string, bool, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.GetCalls++
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	value, ok := f.values[key]
	return value, ok, nil
}

func (f *FakeSecretStorage) Delete(_ context.Context, key string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.values, key)
	return nil
}

// Corrupt overwrites a stored value directly, bypassing the Store, to
// simulate an unreadable record.
func (f *FakeSecretStorage) Corrupt(key, value string) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.values[key] = value
}

// Len returns the number of stored values.
func (f *FakeSecretStorage) Len() int {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return len(f.values)
}
