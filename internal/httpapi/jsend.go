package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	jsendFail  = "fail"
	jsendError = "error"
)

// jsendResponse is the error envelope. Successful responses are plain JSON
// objects so clients can read translation fields directly.
type jsendResponse struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// fail reports a client error (4xx).
func fail(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, jsendResponse{Status: jsendFail, Message: message, Data: data})
}

func failValidation(c echo.Context, fieldErrors map[string]string) error {
	return fail(c, http.StatusBadRequest, "Validation failed", map[string]any{
		"validation_errors": fieldErrors,
	})
}

// internalError reports a server error without leaking its cause.
func internalError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, jsendResponse{
		Status:  jsendError,
		Message: message,
		Code:    http.StatusInternalServerError,
	})
}
