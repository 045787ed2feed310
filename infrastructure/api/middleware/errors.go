// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// ErrAuthentication is the sentinel for authentication failures.
var ErrAuthentication = errors.New("authentication failed")

// ErrServer is the sentinel for server-side errors.
var ErrServer = errors.New("server error")

// APIError is an HTTP error with a status code and message.
type APIError struct {
	code    int
	message string
	cause   error
}

// NewAPIError creates an APIError.
func NewAPIError(code int, message string, cause error) *APIError {
	return &APIError{code: code, message: message, cause: cause}
}

// Code returns the HTTP status code.
func (e *APIError) Code() int { return e.code }

// Message returns the error message.
func (e *APIError) Message() string { return e.message }

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("api error %d: %s", e.code, e.message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error { return e.cause }

// AuthenticationError indicates a failed authentication attempt.
type AuthenticationError struct {
	reason string
}

// NewAuthenticationError creates an AuthenticationError.
func NewAuthenticationError(reason string) *AuthenticationError {
	return &AuthenticationError{reason: reason}
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.reason)
}

// Is matches ErrAuthentication.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// ServerError indicates a server-side failure with an explicit status code.
type ServerError struct {
	statusCode int
	message    string
}

// NewServerError creates a ServerError.
func NewServerError(statusCode int, message string) *ServerError {
	return &ServerError{statusCode: statusCode, message: message}
}

// StatusCode returns the HTTP status code.
func (e *ServerError) StatusCode() int { return e.statusCode }

// Message returns the error message.
func (e *ServerError) Message() string { return e.message }

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.statusCode, e.message)
}

// Is matches ErrServer.
func (e *ServerError) Is(target error) bool {
	return target == ErrServer
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError maps an error to an HTTP status and writes a JSON error body.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, message := statusFor(err)

	if logger != nil && status >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
	}

	WriteJSON(w, status, map[string]string{"error": message})
}

// statusFor resolves the HTTP status and external message for an error.
// Internal errors keep their detail out of the response body.
func statusFor(err error) (int, string) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code(), apiErr.Message()
	}
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.StatusCode(), serverErr.Message()
	}
	if errors.Is(err, ErrAuthentication) {
		return http.StatusUnauthorized, "unauthorized"
	}

	if status, ok := statusForDomain(err); ok {
		return status, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
