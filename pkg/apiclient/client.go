package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const refreshPath = "/auth/refresh"

// ErrSessionExpired is returned when the refresh token itself was rejected.
// The local session has already been cleared when this error surfaces; the
// user must log in again.
var ErrSessionExpired = errors.New("apiclient: session expired, log in again")

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}

	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// envelope mirrors the server's unified response structure.
type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error,omitempty"`
}

// Client talks to the back-office API. It is safe for concurrent use; all
// goroutines share one credential store and one refresh coordinator, so a
// burst of expired calls triggers a single refresh.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *CredentialStore
	refresher  *refreshCoordinator
	logger     *slog.Logger
}

// Option customizes the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for refresh diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for the API at baseURL, rehydrating any persisted
// session from kv.
func New(baseURL string, kv KV, opts ...Option) (*Client, error) {
	store, err := NewCredentialStore(kv)
	if err != nil {
		return nil, err
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
		refresher:  &refreshCoordinator{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Identity returns the signed-in user, if any.
func (c *Client) Identity() (Identity, bool) {
	return c.store.Identity()
}

// Login authenticates with email and password and stores the session.
func (c *Client) Login(ctx context.Context, email, password string) (Identity, error) {
	body := map[string]string{"email": email, "password": password}

	var out sessionPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return Identity{}, err
	}

	if err := c.store.SetSession(out.AccessToken, out.RefreshToken, out.User); err != nil {
		return Identity{}, err
	}

	return out.User, nil
}

// Logout revokes the current refresh token server-side and clears the local
// session. Clearing happens even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	_, refreshToken, ok := c.store.RefreshCredentials()

	var callErr error
	if ok {
		callErr = c.do(ctx, http.MethodPost, "/auth/logout", map[string]string{"refreshToken": refreshToken}, nil)
	}

	if err := c.store.Clear(); err != nil {
		return err
	}

	return callErr
}

// GetJSON issues a GET and decodes the response data into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// PostJSON issues a POST with a JSON body and decodes the response data into
// out. out may be nil when the response data is not needed.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// PatchJSON issues a PATCH with a JSON body and decodes the response data
// into out.
func (c *Client) PatchJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// do runs one request with bearer auth. A 401 on anything but the refresh
// endpoint triggers a coordinated refresh and exactly one replay with the new
// token; the replay's outcome is final.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
	}

	usedToken := c.store.AccessToken()

	status, raw, err := c.send(ctx, method, path, payload, usedToken)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && path != refreshPath {
		if _, _, ok := c.store.RefreshCredentials(); !ok {
			// Nothing to refresh with; surface the 401 as-is.
			return decodeEnvelope(status, raw, out)
		}

		token, refreshErr := c.refresher.Do(ctx, func(ctx context.Context) (string, error) {
			return c.refreshSession(ctx, usedToken)
		})
		if refreshErr != nil {
			if clearErr := c.store.Clear(); clearErr != nil {
				c.logger.Warn("failed to clear credentials after refresh rejection", slog.Any("error", clearErr))
			}

			return errors.Wrap(ErrSessionExpired, refreshErr.Error())
		}

		status, raw, err = c.send(ctx, method, path, payload, token)
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized {
			// A freshly minted token was rejected too; the session is not
			// salvageable, so log out locally before surfacing the error.
			if clearErr := c.store.Clear(); clearErr != nil {
				c.logger.Warn("failed to clear credentials after replayed 401", slog.Any("error", clearErr))
			}
		}
	}

	return decodeEnvelope(status, raw, out)
}

// refreshSession rotates the token pair. When the store no longer holds the
// token that just failed someone else finished a rotation first, so the
// current token is returned without another network round trip.
func (c *Client) refreshSession(ctx context.Context, staleToken string) (string, error) {
	if current := c.store.AccessToken(); current != "" && current != staleToken {
		return current, nil
	}

	userID, refreshToken, ok := c.store.RefreshCredentials()
	if !ok {
		return "", errors.New("no refresh credentials")
	}

	body := map[string]string{"userId": userID, "refreshToken": refreshToken}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", errors.Wrap(err, "encode refresh body")
	}

	status, raw, err := c.send(ctx, http.MethodPost, refreshPath, payload, "")
	if err != nil {
		return "", err
	}

	var out sessionPayload
	if err := decodeEnvelope(status, raw, &out); err != nil {
		return "", err
	}

	if err := c.store.SetSession(out.AccessToken, out.RefreshToken, out.User); err != nil {
		return "", err
	}

	c.logger.Debug("access token refreshed", slog.String("userId", out.User.ID))

	return out.AccessToken, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, token string) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, errors.Wrap(err, "build request")
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrap(err, "read response body")
	}

	return resp.StatusCode, raw, nil
}

func decodeEnvelope(status int, raw []byte, out any) error {
	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return errors.Wrapf(err, "decode response (status %d)", status)
		}
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices || !env.Success {
		apiErr := &APIError{StatusCode: status, Message: env.Message}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Details = env.Error.Details
		}

		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}

	return errors.Wrap(json.Unmarshal(env.Data, out), "decode response data")
}

// sessionPayload is the data half of login and refresh responses.
type sessionPayload struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         Identity `json:"user"`
}
