// SPDX-License-Identifier: AGPL-3.0-only
package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StorageKey is the single slot the session token is kept under.
const StorageKey = "auth_token"

var ErrNoKey = errors.New("encryption key must be 32 bytes")

type Store interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

type sealedToken struct {
	Cipher    []byte    `json:"cipher"`
	Nonce     []byte    `json:"nonce"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenStore keeps the content service token encrypted on disk.
type TokenStore struct {
	path string
	key  []byte
	mu   sync.Mutex
}

func NewTokenStore(path string, key []byte) (*TokenStore, error) {
	if len(key) != 32 {
		return nil, ErrNoKey
	}
	return &TokenStore{path: path, key: key}, nil
}

func encrypt(plaintext []byte, key []byte) (ciphertext, nonce []byte, err error) {
	if len(key) != 32 {
		return nil, nil, ErrNoKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, err
	}

	ciphertext = gcm.Seal(nil, nonce, plaintext, nil)
	return
}

func decrypt(ciphertext, nonce, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return gcm.Open(nil, nonce, ciphertext, nil)
}

func (s *TokenStore) load() (map[string]sealedToken, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]sealedToken{}, nil
	}
	if err != nil {
		return nil, err
	}

	slots := map[string]sealedToken{}
	if len(data) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("token store %s is corrupt: %w", s.path, err)
	}
	return slots, nil
}

func (s *TokenStore) save(slots map[string]sealedToken) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Get returns the stored token, or "" when none was saved.
func (s *TokenStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return "", err
	}

	sealed, ok := slots[StorageKey]
	if !ok {
		return "", nil
	}

	plaintext, err := decrypt(sealed.Cipher, sealed.Nonce, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt token: %w", err)
	}
	return string(plaintext), nil
}

func (s *TokenStore) Set(token string) error {
	if token == "" {
		return s.Clear()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return err
	}

	ciphertext, nonce, err := encrypt([]byte(token), s.key)
	if err != nil {
		return err
	}

	slots[StorageKey] = sealedToken{Cipher: ciphertext, Nonce: nonce, UpdatedAt: time.Now().UTC()}
	return s.save(slots)
}

func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := slots[StorageKey]; !ok {
		return nil
	}

	delete(slots, StorageKey)
	return s.save(slots)
}

// MemoryStore is used when no encryption key is configured; the token only
// lives as long as the process.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryStore) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStore) Set(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear() error {
	return m.Set("")
}

// AuthHeader returns the Authorization header for a token, or nil.
func AuthHeader(token string) map[string]string {
	if token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Token " + token}
}
