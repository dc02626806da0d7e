package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/paddlebook/paddlebook/internal/config"
)

// Envelope is the single response shape of the API: every success
// response is {success: true, data, message?} and every error response
// is {success: false, message}.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(body)
}

func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func OKMessage(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

func Fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "authentication required"
	}
	Fail(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "insufficient permissions"
	}
	Fail(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, resource string) {
	Fail(w, http.StatusNotFound, resource+" not found")
}

func Conflict(w http.ResponseWriter, message string) {
	Fail(w, http.StatusConflict, message)
}

// InternalServerError logs the underlying error and returns a generic
// message to the client in production. Outside production the error
// detail is included to ease debugging.
func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)

	message := "internal server error"
	if err != nil && !inProduction() {
		message = err.Error()
	}

	Fail(w, http.StatusInternalServerError, message)
}

// JSONError translates any domain error into the response envelope.
func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		Fail(w, appErr.Status, appErr.Message)
		return
	}

	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		InternalServerError(w, err)
		return
	}

	Fail(w, status, messageFor(err))
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid input"
	case errors.Is(err, ErrTokenExpired):
		return "token has expired"
	case errors.Is(err, ErrTokenInvalid):
		return "invalid token"
	case errors.Is(err, ErrUnauthorized):
		return "authentication required"
	case errors.Is(err, ErrForbidden):
		return "insufficient permissions"
	case errors.Is(err, ErrNotFound):
		return "not found"
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicateKey):
		return "conflict"
	default:
		return "internal server error"
	}
}

func inProduction() bool {
	if !config.Loaded() {
		return false
	}
	return config.Get().IsProduction()
}

// FormatValidationError turns validator.ValidationErrors into a
// readable single-line message for the 400 envelope.
func FormatValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "invalid request"
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, field+" must be at least "+fe.Param()+" characters")
		case "max":
			msgs = append(msgs, field+" must be at most "+fe.Param()+" characters")
		case "oneof":
			msgs = append(msgs, field+" must be one of: "+fe.Param())
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}

	return strings.Join(msgs, "; ")
}
