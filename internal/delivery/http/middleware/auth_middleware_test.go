package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/service"
	mockservice "backoffice/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAuthenticate(t *testing.T, tokenSvc service.TokenService, authHeader string) (echo.Context, *httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/properties", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := NewAuthMiddleware(tokenSvc)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := m.Authenticate(next)(c)

	return c, rec, err
}

func TestAuthenticateStoresClaimsOnContext(t *testing.T) {
	tokenSvc := mockservice.NewMockTokenService(t)

	userID := uuid.New()
	tokenSvc.On("ValidateAccessToken", "good-token").
		Return(&service.Claims{UserID: userID, Role: "team_lead", Type: "access"}, nil)

	c, rec, err := runAuthenticate(t, tokenSvc, "Bearer good-token")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	actorID, ok := ActorID(c)
	require.True(t, ok)
	assert.Equal(t, userID, actorID)

	role, ok := ActorRole(c)
	require.True(t, ok)
	assert.Equal(t, entity.RoleTeamLead, role)
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	tokenSvc := mockservice.NewMockTokenService(t)

	_, rec, err := runAuthenticate(t, tokenSvc, "")

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	tokenSvc.AssertNotCalled(t, "ValidateAccessToken")
}

func TestAuthenticateRejectsInvalidToken(t *testing.T) {
	tokenSvc := mockservice.NewMockTokenService(t)
	tokenSvc.On("ValidateAccessToken", "bad-token").Return(nil, errors.New("token is expired"))

	_, rec, err := runAuthenticate(t, tokenSvc, "Bearer bad-token")

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRolesBlocksOutsiders(t *testing.T) {
	tokenSvc := mockservice.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/property-requests/pending", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyUserID, uuid.New())
	c.Set(ContextKeyRole, entity.RoleAgent)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := m.RequireRoles(entity.RoleCEO, entity.RoleManager, entity.RoleTeamLead)(next)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesAdmitsMatchingRole(t *testing.T) {
	tokenSvc := mockservice.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/property-requests/pending", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyUserID, uuid.New())
	c.Set(ContextKeyRole, entity.RoleManager)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := m.RequireRoles(entity.RoleCEO, entity.RoleManager)(next)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
