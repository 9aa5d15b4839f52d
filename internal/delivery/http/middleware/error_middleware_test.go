package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "backoffice/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewErrorMiddleware(slog.Default()).HandleHTTPError(err, c)

	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestHandleHTTPErrorMapsAppError(t *testing.T) {
	rec := handleError(t, errors.Wrap(domainerrors.ErrRequestResolved, "decide"))

	assert.Equal(t, http.StatusConflict, rec.Code)

	body := decodeErrorBody(t, rec)
	assert.Equal(t, false, body["success"])
	errorInfo := body["error"].(map[string]any)
	assert.Equal(t, "REQUEST_ALREADY_RESOLVED", errorInfo["code"])
}

func TestHandleHTTPErrorMapsForbidden(t *testing.T) {
	rec := handleError(t, domainerrors.ErrForbidden)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleHTTPErrorDefaultsToInternalError(t *testing.T) {
	rec := handleError(t, errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeErrorBody(t, rec)
	errorInfo := body["error"].(map[string]any)
	assert.Equal(t, "INTERNAL_ERROR", errorInfo["code"])
	// Internal details never leak to the client
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestHandleHTTPErrorMapsEchoHTTPError(t *testing.T) {
	rec := handleError(t, echo.NewHTTPError(http.StatusNotFound, "route not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeErrorBody(t, rec)
	errorInfo := body["error"].(map[string]any)
	assert.Equal(t, "HTTP_ERROR", errorInfo["code"])
}
