package securefile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-taskboard-client/credentials/securefile"
)

func TestSetGetDeleteRoundTrip(t *testing.T) {
	storage, err := securefile.New(t.TempDir(), []byte("device-secret"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, "credential-session", "payload"))

	value, ok, err := storage.Get(ctx, "credential-session")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "payload", value)

	require.NoError(t, storage.Delete(ctx, "credential-session"))

	_, ok, err = storage.Get(ctx, "credential-session")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGetAbsentKey(t *testing.T) {
	storage, err := securefile.New(t.TempDir(), []byte("device-secret"))
	require.NoError(t, err)

	_, ok, err := storage.Get(context.Background(), "never-set")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWrongSecretFailsToDecrypt(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := securefile.New(dir, []byte("device-secret"))
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "credential-session", "payload"))

	second, err := securefile.New(dir, []byte("other-secret"))
	require.NoError(t, err)

	_, _, err = second.Get(ctx, "credential-session")
	require.Error(t, err)
}

func TestSetReplacesExistingValue(t *testing.T) {
	storage, err := securefile.New(t.TempDir(), []byte("device-secret"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, "credential-session", "first"))
	require.NoError(t, storage.Set(ctx, "credential-session", "second"))

	value, ok, err := storage.Get(ctx, "credential-session")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", value)
}

func TestDeleteAbsentKeyIsNotAnError(t *testing.T) {
	storage, err := securefile.New(t.TempDir(), []byte("device-secret"))
	require.NoError(t, err)

	require.NoError(t, storage.Delete(context.Background(), "never-set"))
}

func TestNewRequiresDirAndSecret(t *testing.T) {
	_, err := securefile.New("", []byte("device-secret"))
	require.Error(t, err)

	_, err = securefile.New(t.TempDir(), nil)
	require.Error(t, err)
}
