package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStoreDropsHalfWrittenSession(t *testing.T) {
	kv := NewMemoryKV()
	// An access token with no identity is a torn write from a crashed
	// process; the store must come up logged out.
	require.NoError(t, kv.Set(keyAccessToken, "orphan-token"))

	store, err := NewCredentialStore(kv)

	require.NoError(t, err)
	assert.Empty(t, store.AccessToken())
	_, ok := store.Identity()
	assert.False(t, ok)
}

func TestCredentialStoreClearRemovesPersistedKeys(t *testing.T) {
	kv := NewMemoryKV()
	store, err := NewCredentialStore(kv)
	require.NoError(t, err)

	require.NoError(t, store.SetSession("access", "refresh", Identity{ID: "user-1", Role: "ceo"}))
	require.NoError(t, store.Clear())

	for _, key := range []string{keyAccessToken, keyRefreshToken, keyIdentity} {
		_, err := kv.Get(key)
		assert.ErrorIs(t, err, ErrKeyNotFound, key)
	}
}
