// Package apiclient is the Go SDK for the back-office HTTP API. It manages
// the session credentials on disk, refreshes expired access tokens behind a
// single in-flight request, and transparently replays calls that failed with
// a 401 once a fresh token is available.
package apiclient

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned by KV implementations when a key is absent.
var ErrKeyNotFound = errors.New("apiclient: key not found")

// KV is the minimal persistence contract the credential store writes through.
// Implementations must be safe for concurrent use.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryKV is an in-process KV, useful for tests and short-lived tools that
// do not need the session to survive a restart.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the value for key, or ErrKeyNotFound.
func (m *MemoryKV) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}

	return value, nil
}

// Set stores value under key.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value

	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (m *MemoryKV) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}
