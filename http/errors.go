package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldsafe/safecheck"
)

// errorStatusCode maps domain error codes to HTTP status codes.
func errorStatusCode(code string) int {
	switch code {
	case safecheck.ENOTFOUND:
		return http.StatusNotFound
	case safecheck.EINVALID:
		return http.StatusBadRequest
	case safecheck.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case safecheck.EFORBIDDEN:
		return http.StatusForbidden
	case safecheck.ECONFLICT:
		return http.StatusConflict
	case safecheck.ERATELIMIT:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse represents the JSON error response format.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// HandleError converts domain errors to appropriate HTTP responses.
// It logs internal errors and returns user-safe messages.
func HandleError(c echo.Context, logger *slog.Logger, err error) error {
	code := safecheck.ErrorCode(err)
	message := safecheck.ErrorMessage(err)
	fields := safecheck.ErrorFields(err)
	status := errorStatusCode(code)

	// Log internal errors with full details but never expose them
	if code == safecheck.EINTERNAL {
		logger.Error("internal error",
			slog.String("error", err.Error()),
			slog.String("path", c.Path()),
			slog.String("method", c.Request().Method),
		)
		message = "An internal error occurred."
	}

	return c.JSON(status, ErrorResponse{
		Error:   code,
		Message: message,
		Fields:  fields,
	})
}
