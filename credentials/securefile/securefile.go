package securefile

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// Storage is a file-backed SecretStorage. Each key is stored in its own
// file under dir, encrypted with XChaCha20-Poly1305 using a key derived
// from the device secret via HKDF-SHA256. The storage key is bound into
// the ciphertext as additional data, so a file renamed to another key's
// path will not decrypt.
type Storage struct {
	dir  string
	key  []byte
	salt []byte
}

const (
	dirMode  = 0o700
	fileMode = 0o600
)

// New creates the storage directory if needed and derives the encryption
// key from the device secret.
func New(dir string, secret []byte) (*Storage, error) {
	if dir == "" {
		return nil, errors.New("[securefile.New] dir is required")
	}
	if len(secret) == 0 {
		return nil, errors.New("[securefile.New] secret is required")
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, errors.Wrap(err, "[securefile.New] create dir")
	}
	key, err := deriveKey(secret)
	if err != nil {
		return nil, errors.Wrap(err, "[securefile.New] derive key")
	}
	return &Storage{dir: dir, key: key}, nil
}

// deriveKey derives the AEAD key from the device secret using HKDF-SHA256.
func deriveKey(secret []byte) ([]byte, error) {
	h := hkdf.New(sha256.New, secret, nil, []byte("taskboard-credential-store"))
	out := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(h, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Set persists a value under a key, replacing any existing value.
func (s *Storage) Set(_ context.Context, key, value string) error {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return errors.Wrap(err, "[securefile.Set] aead")
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return errors.Wrap(err, "[securefile.Set] nonce")
	}

	ciphertext := aead.Seal(nonce, nonce, []byte(value), []byte(key))
	if err := os.WriteFile(s.path(key), ciphertext, fileMode); err != nil {
		return errors.Wrap(err, "[securefile.Set] write")
	}
	return nil
}

// Get returns the stored value and whether the key exists.
func (s *Storage) Get(_ context.Context, key string) (string, bool, error) {
	ciphertext, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "[securefile.Get] read")
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", false, errors.Wrap(err, "[securefile.Get] aead")
	}
	if len(ciphertext) < aead.NonceSize() {
		return "", false, errors.New("[securefile.Get] ciphertext too short")
	}

	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, []byte(key))
	if err != nil {
		return "", false, errors.Wrap(err, "[securefile.Get] decrypt")
	}
	return string(plaintext), true, nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Storage) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[securefile.Delete] remove")
	}
	return nil
}

func (s *Storage) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:12])+".enc")
}
