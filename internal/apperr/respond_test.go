package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteRendersEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	Write(rec, NotFound("Task not found"), false)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Task not found", body["message"])
	assert.Equal(t, 404.0, body["statusCode"])
	assert.NotContains(t, body, "error")
}

func TestWriteWrapsUnknownErrorsAs500(t *testing.T) {
	rec := httptest.NewRecorder()

	Write(rec, errors.New("mongo: connection reset"), false)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Internal Server Error", body["message"])
	assert.NotContains(t, body, "error")
}

func TestWriteAttachesDetailOnlyInDev(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	rec := httptest.NewRecorder()
	Write(rec, Internal("Server error", cause), true)
	body := decode(t, rec)
	assert.Equal(t, "dial tcp: refused", body["error"])

	rec = httptest.NewRecorder()
	Write(rec, Internal("Server error", cause), false)
	body = decode(t, rec)
	assert.NotContains(t, body, "error")
}

func TestWriteUnwrapsWrappedAppError(t *testing.T) {
	rec := httptest.NewRecorder()

	Write(rec, fmt.Errorf("handling request: %w", Unauthenticated("Not authenticated")), false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Not authenticated", body["message"])
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Internal("Server error", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "root cause")
}
