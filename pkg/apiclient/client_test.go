package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnvelope struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error,omitempty"`
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(testEnvelope{Success: true, Code: status, Message: "ok", Data: data})
}

func writeFailure(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(testEnvelope{
		Success: false,
		Code:    status,
		Message: http.StatusText(status),
		Error: &struct {
			Code    string `json:"code"`
			Details string `json:"details"`
		}{Code: code},
	})
}

// apiFixture is a fake back-office API. It accepts exactly one access token
// at a time; a refresh rotates both tokens and invalidates the old pair.
type apiFixture struct {
	mu            sync.Mutex
	accessToken   string
	refreshToken  string
	refreshCalls  atomic.Int64
	dataCalls     atomic.Int64
	rejectRefresh bool
	rejectData    bool
}

func (f *apiFixture) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)

		var body struct {
			UserID       string `json:"userId"`
			RefreshToken string `json:"refreshToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		defer f.mu.Unlock()

		if f.rejectRefresh || body.RefreshToken != f.refreshToken {
			writeFailure(w, http.StatusUnauthorized, "REFRESH_TOKEN_INVALID")

			return
		}

		f.accessToken += "+"
		f.refreshToken += "+"
		writeSuccess(w, http.StatusOK, map[string]any{
			"accessToken":  f.accessToken,
			"refreshToken": f.refreshToken,
			"user":         Identity{ID: body.UserID, Name: "Ada", Email: "ada@example.com", Role: "agent"},
		})
	})

	mux.HandleFunc("GET /data", func(w http.ResponseWriter, r *http.Request) {
		f.dataCalls.Add(1)

		f.mu.Lock()
		valid := !f.rejectData && r.Header.Get("Authorization") == "Bearer "+f.accessToken
		f.mu.Unlock()

		if !valid {
			writeFailure(w, http.StatusUnauthorized, "UNAUTHORIZED")

			return
		}

		writeSuccess(w, http.StatusOK, map[string]string{"value": "42"})
	})

	return mux
}

func newTestClient(t *testing.T, fixture *apiFixture) (*Client, *CredentialStore) {
	t.Helper()

	server := httptest.NewServer(fixture.handler())
	t.Cleanup(server.Close)

	client, err := New(server.URL, NewMemoryKV())
	require.NoError(t, err)

	return client, client.store
}

func seedSession(t *testing.T, store *CredentialStore, access, refresh string) {
	t.Helper()

	err := store.SetSession(access, refresh, Identity{ID: "user-1", Role: "agent"})
	require.NoError(t, err)
}

func TestClientExpiredTokenIsRefreshedAndReplayed(t *testing.T) {
	fixture := &apiFixture{accessToken: "access", refreshToken: "refresh"}
	client, store := newTestClient(t, fixture)
	seedSession(t, store, "stale", "refresh")

	var out map[string]string
	err := client.GetJSON(context.Background(), "/data", &out)

	require.NoError(t, err)
	assert.Equal(t, "42", out["value"])
	assert.Equal(t, int64(1), fixture.refreshCalls.Load())
	// One rejected call, one replay with the rotated token.
	assert.Equal(t, int64(2), fixture.dataCalls.Load())
	assert.Equal(t, "access+", store.AccessToken())
}

func TestClientConcurrentExpiryTriggersSingleRefresh(t *testing.T) {
	fixture := &apiFixture{accessToken: "access", refreshToken: "refresh"}
	client, store := newTestClient(t, fixture)
	seedSession(t, store, "stale", "refresh")

	const workers = 16

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			var out map[string]string
			errs[i] = client.GetJSON(context.Background(), "/data", &out)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), fixture.refreshCalls.Load(), "all goroutines must share one refresh")
}

func TestClientRejectedRefreshClearsSession(t *testing.T) {
	fixture := &apiFixture{accessToken: "access", refreshToken: "refresh", rejectRefresh: true}
	client, store := newTestClient(t, fixture)
	seedSession(t, store, "stale", "refresh")

	err := client.GetJSON(context.Background(), "/data", nil)

	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, store.AccessToken())
	_, _, ok := store.RefreshCredentials()
	assert.False(t, ok, "refresh credentials must be wiped")
}

func TestClientUnauthorizedReplayClearsSession(t *testing.T) {
	// The refresh succeeds and rotates the pair, but the server keeps
	// rejecting the data call. The replayed 401 is terminal: the client must
	// log out locally instead of keeping a session it cannot use.
	fixture := &apiFixture{accessToken: "access", refreshToken: "refresh", rejectData: true}
	client, store := newTestClient(t, fixture)
	seedSession(t, store, "access", "refresh")

	err := client.GetJSON(context.Background(), "/data", nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, int64(1), fixture.refreshCalls.Load())
	assert.Equal(t, int64(2), fixture.dataCalls.Load(), "exactly one replay")
	assert.Empty(t, store.AccessToken())
	_, _, ok := store.RefreshCredentials()
	assert.False(t, ok, "session must be cleared after a terminal 401")
}

func TestClientWithoutRefreshCredentialsPropagatesUnauthorized(t *testing.T) {
	fixture := &apiFixture{accessToken: "access", refreshToken: "refresh"}
	client, _ := newTestClient(t, fixture)

	err := client.GetJSON(context.Background(), "/data", nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, int64(0), fixture.refreshCalls.Load(), "no refresh attempt without credentials")
}

func TestClientLoginStoresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		if body.Password != "s3cret" {
			writeFailure(w, http.StatusUnauthorized, "INVALID_CREDENTIALS")

			return
		}

		writeSuccess(w, http.StatusOK, map[string]any{
			"accessToken":  "access",
			"refreshToken": "refresh",
			"user":         Identity{ID: "user-1", Name: "Ada", Email: body.Email, Role: "manager"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := New(server.URL, NewMemoryKV())
	require.NoError(t, err)

	identity, err := client.Login(context.Background(), "ada@example.com", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, "manager", identity.Role)
	assert.Equal(t, "access", client.store.AccessToken())
	userID, token, ok := client.store.RefreshCredentials()
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "refresh", token)
}

func TestClientSessionSurvivesRestartViaFileKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	kv, err := NewFileKV(path)
	require.NoError(t, err)

	store, err := NewCredentialStore(kv)
	require.NoError(t, err)
	seedSession(t, store, "access", "refresh")

	// A brand new KV and store reading the same file see the same session.
	reloadedKV, err := NewFileKV(path)
	require.NoError(t, err)
	reloaded, err := NewCredentialStore(reloadedKV)
	require.NoError(t, err)

	assert.Equal(t, "access", reloaded.AccessToken())
	userID, token, ok := reloaded.RefreshCredentials()
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "refresh", token)
}
