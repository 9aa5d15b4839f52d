package apiclient

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

const (
	keyAccessToken  = "auth.access_token"
	keyRefreshToken = "auth.refresh_token"
	keyIdentity     = "auth.identity"
)

// Identity is the signed-in user as the server reports it.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CredentialStore holds the session credentials in memory and mirrors every
// change through the backing KV, so a fresh store rehydrates to the same
// session. An access token is only ever held together with the identity it
// was issued for; if either half is missing from the KV the pair is dropped
// on load.
type CredentialStore struct {
	mu           sync.RWMutex
	kv           KV
	accessToken  string
	refreshToken string
	identity     *Identity
}

// NewCredentialStore creates a store backed by kv and rehydrates any
// persisted session.
func NewCredentialStore(kv KV) (*CredentialStore, error) {
	store := &CredentialStore{kv: kv}
	if err := store.load(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *CredentialStore) load() error {
	accessToken, err := s.kv.Get(keyAccessToken)
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return errors.Wrap(err, "load access token")
	}

	rawIdentity, err := s.kv.Get(keyIdentity)
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return errors.Wrap(err, "load identity")
	}

	var identity *Identity
	if rawIdentity != "" {
		identity = &Identity{}
		if err := json.Unmarshal([]byte(rawIdentity), identity); err != nil {
			return errors.Wrap(err, "parse identity")
		}
	}

	// A token without its identity (or the reverse) is a half-written
	// session; treat it as logged out rather than guessing.
	if accessToken == "" || identity == nil {
		accessToken = ""
		identity = nil
	}

	refreshToken, err := s.kv.Get(keyRefreshToken)
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return errors.Wrap(err, "load refresh token")
	}

	s.accessToken = accessToken
	s.refreshToken = refreshToken
	s.identity = identity

	return nil
}

// SetSession replaces the whole session atomically with respect to readers
// and persists each part.
func (s *CredentialStore) SetSession(accessToken, refreshToken string, identity Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rawIdentity, err := json.Marshal(identity)
	if err != nil {
		return errors.Wrap(err, "encode identity")
	}

	if err := s.kv.Set(keyAccessToken, accessToken); err != nil {
		return errors.Wrap(err, "persist access token")
	}
	if err := s.kv.Set(keyRefreshToken, refreshToken); err != nil {
		return errors.Wrap(err, "persist refresh token")
	}
	if err := s.kv.Set(keyIdentity, string(rawIdentity)); err != nil {
		return errors.Wrap(err, "persist identity")
	}

	s.accessToken = accessToken
	s.refreshToken = refreshToken
	s.identity = &identity

	return nil
}

// AccessToken returns the current access token, or "" when logged out.
func (s *CredentialStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accessToken
}

// RefreshCredentials returns the user ID and refresh token needed to rotate
// the session. ok is false when either is missing.
func (s *CredentialStore) RefreshCredentials() (userID, token string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil || s.refreshToken == "" {
		return "", "", false
	}

	return s.identity.ID, s.refreshToken, true
}

// Identity returns the signed-in user, if any.
func (s *CredentialStore) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return Identity{}, false
	}

	return *s.identity, true
}

// Clear wipes the session from memory and the KV.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = ""
	s.refreshToken = ""
	s.identity = nil

	for _, key := range []string{keyAccessToken, keyRefreshToken, keyIdentity} {
		if err := s.kv.Remove(key); err != nil {
			return errors.Wrapf(err, "remove %s", key)
		}
	}

	return nil
}
