// Package respond writes JSON responses and maps domain errors to HTTP status codes.
// Client errors carry the domain message; server errors are logged with secrets masked
// and answered with a generic message.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sony/gobreaker"

	"lingua-cms/internal/domain/entity"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// StatusOf maps an error to its HTTP status.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, entity.ErrValidationFailed), errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Err writes err with the status StatusOf assigns to it.
func Err(w http.ResponseWriter, err error) {
	SafeError(w, StatusOf(err), err)
}

// SafeError writes err with an explicit status.
// Below 500 the message is returned as is; from 500 up it is logged and replaced.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	if code >= http.StatusInternalServerError {
		slog.Default().Error("internal server error",
			slog.String("status", http.StatusText(code)),
			slog.Int("code", code),
			slog.String("error", SanitizeError(err)))
		msg := "internal server error"
		if code == http.StatusServiceUnavailable {
			msg = "service temporarily unavailable"
		}
		JSON(w, code, ErrorBody{Error: msg})
		return
	}

	body := ErrorBody{Error: err.Error()}
	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		body.Field = vErr.Field
	}
	var dErr *entity.DomainError
	if errors.As(err, &dErr) {
		body.Error = dErr.Message
	}
	JSON(w, code, body)
}
