package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backoffice/internal/delivery/http/middleware"
	"backoffice/internal/delivery/http/validator"
	"backoffice/internal/domain/entity"
	mockusecase "backoffice/internal/mocks/usecase"
	"backoffice/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func TestAuthHandlerLoginReturnsSessionPayload(t *testing.T) {
	uc := mockusecase.NewMockAuthUsecase(t)
	handler := NewAuthHandler(uc, slog.Default())

	user := &entity.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", Role: entity.RoleManager}
	uc.On("Login", mock.Anything, &usecase.LoginInput{Email: "ada@example.com", Password: "s3cret-pw"}).
		Return(&usecase.LoginOutput{AccessToken: "access", RefreshToken: "refresh", User: user}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"ada@example.com","password":"s3cret-pw"}`)

	require.NoError(t, handler.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]any)
	assert.Equal(t, "access", data["accessToken"])
	assert.Equal(t, "refresh", data["refreshToken"])

	userData := data["user"].(map[string]any)
	assert.Equal(t, "manager", userData["role"])
	assert.NotContains(t, rec.Body.String(), "PasswordHash")
}

func TestAuthHandlerLoginRejectsMalformedEmail(t *testing.T) {
	uc := mockusecase.NewMockAuthUsecase(t)
	handler := NewAuthHandler(uc, slog.Default())

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"not-an-email","password":"s3cret-pw"}`)

	err := handler.Login(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	uc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthHandlerRefreshForwardsUserID(t *testing.T) {
	uc := mockusecase.NewMockAuthUsecase(t)
	handler := NewAuthHandler(uc, slog.Default())

	userID := uuid.New()
	user := &entity.User{ID: userID, Role: entity.RoleAgent}
	uc.On("Refresh", mock.Anything, &usecase.RefreshInput{UserID: userID, RefreshToken: "old-refresh"}).
		Return(&usecase.RefreshOutput{AccessToken: "new-access", RefreshToken: "new-refresh", User: user}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/refresh",
		`{"userId":"`+userID.String()+`","refreshToken":"old-refresh"}`)

	require.NoError(t, handler.Refresh(c))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "new-access", data["accessToken"])
	assert.Equal(t, "new-refresh", data["refreshToken"])
}

func TestAuthHandlerMeUsesAuthenticatedActor(t *testing.T) {
	uc := mockusecase.NewMockAuthUsecase(t)
	handler := NewAuthHandler(uc, slog.Default())

	userID := uuid.New()
	uc.On("GetUser", mock.Anything, userID).
		Return(&entity.User{ID: userID, Name: "Ada", Email: "ada@example.com", Role: entity.RoleCEO}, nil)

	c, rec := newTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyRole, entity.RoleCEO)

	require.NoError(t, handler.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, userID.String(), data["id"])
	assert.Equal(t, "ceo", data["role"])
}
