package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdelivery/internal/core/application/usecases/commands"
	"smartdelivery/internal/pkg/errs"
)

func recordError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, respondError(ctx, err))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestRespondError_ValidationFailed(t *testing.T) {
	err := errs.NewValidationFailedError(
		[]string{"OTP required but not provided", "photo required but not provided"},
		errs.RequirementFlags{OTP: true, Photo: true},
	)

	rec, body := recordError(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
	assert.Len(t, body["violations"], 2)

	flags, ok := body["requirements"].(map[string]any)
	require.True(t, ok, "payload carries the requirement flags")
	assert.Equal(t, true, flags["otp"])
	assert.Equal(t, true, flags["photo"])
	assert.Equal(t, false, flags["signature"])
	assert.Equal(t, false, flags["biometric"])
}

func TestRespondError_NotFound(t *testing.T) {
	rec, body := recordError(t, errs.NewObjectNotFoundError("sector rule", "standard"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SECTOR_RULE_NOT_FOUND", body["code"])
	assert.NotContains(t, body, "requirements")
}

func TestRespondError_Conflicts(t *testing.T) {
	for err, code := range map[error]string{
		commands.ErrNoDriversAvailable: "NO_DRIVERS_AVAILABLE",
		commands.ErrOrderNotAvailable:  "ORDER_NOT_AVAILABLE",
		commands.ErrDriverNotAvailable: "DRIVER_NOT_AVAILABLE",
	} {
		rec, body := recordError(t, err)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, code, body["code"])
	}
}

func TestRespondError_Unknown(t *testing.T) {
	rec, body := recordError(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", body["error"], "internals never leak")
}
