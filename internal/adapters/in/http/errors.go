package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"smartdelivery/internal/core/application/usecases/commands"
	"smartdelivery/internal/pkg/errs"
)

// errorBody is the uniform error payload: a human message and a stable
// machine-readable code. Validation failures additionally carry the full
// violation list and the requirement flags the evidence was checked against.
type errorBody struct {
	Error        string                   `json:"error"`
	Code         string                   `json:"code"`
	Violations   []string                 `json:"violations,omitempty"`
	Requirements *requirementFlagsPayload `json:"requirements,omitempty"`
}

type requirementFlagsPayload struct {
	OTP       bool `json:"otp"`
	Signature bool `json:"signature"`
	Photo     bool `json:"photo"`
	Biometric bool `json:"biometric"`
}

// respondError translates core errors into HTTP responses. Anything
// unrecognized becomes a 500 with a generic message so internals never leak.
func respondError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		code := strings.ToUpper(strings.ReplaceAll(notFound.Kind, " ", "_")) + "_NOT_FOUND"
		return ctx.JSON(http.StatusNotFound, errorBody{Error: err.Error(), Code: code})
	}

	var validationFailed *errs.ValidationFailedError
	if errors.As(err, &validationFailed) {
		return ctx.JSON(http.StatusUnprocessableEntity, errorBody{
			Error:      err.Error(),
			Code:       "VALIDATION_FAILED",
			Violations: validationFailed.Violations,
			Requirements: &requirementFlagsPayload{
				OTP:       validationFailed.Requirements.OTP,
				Signature: validationFailed.Requirements.Signature,
				Photo:     validationFailed.Requirements.Photo,
				Biometric: validationFailed.Requirements.Biometric,
			},
		})
	}

	switch {
	case errors.Is(err, commands.ErrNoDriversAvailable):
		return ctx.JSON(http.StatusConflict, errorBody{Error: err.Error(), Code: "NO_DRIVERS_AVAILABLE"})
	case errors.Is(err, commands.ErrOrderNotAvailable):
		return ctx.JSON(http.StatusConflict, errorBody{Error: err.Error(), Code: "ORDER_NOT_AVAILABLE"})
	case errors.Is(err, commands.ErrDriverNotAvailable):
		return ctx.JSON(http.StatusConflict, errorBody{Error: err.Error(), Code: "DRIVER_NOT_AVAILABLE"})
	case errors.Is(err, errs.ErrInvalidState):
		return ctx.JSON(http.StatusConflict, errorBody{Error: err.Error(), Code: "INVALID_STATE"})
	case errors.Is(err, errs.ErrNotAuthorized):
		return ctx.JSON(http.StatusForbidden, errorBody{Error: err.Error(), Code: "NOT_AUTHORIZED"})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, errorBody{Error: err.Error(), Code: "INVALID_REQUEST"})
	}

	return ctx.JSON(http.StatusInternalServerError, errorBody{
		Error: "internal error",
		Code:  "INTERNAL",
	})
}

// respondBadRequest reports a malformed or rejected request payload.
func respondBadRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, errorBody{Error: err.Error(), Code: "INVALID_REQUEST"})
}
