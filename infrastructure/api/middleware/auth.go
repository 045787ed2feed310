package middleware

import (
	"crypto/subtle"
	"net/http"
)

// apiKeyHeader carries the client's API key.
const apiKeyHeader = "X-API-KEY"

// AuthConfig holds API key authentication settings. With no keys configured
// authentication is disabled and every request passes.
type AuthConfig struct {
	keys []string
}

// NewAuthConfigWithKeys creates an AuthConfig from a list of valid keys.
func NewAuthConfigWithKeys(keys []string) AuthConfig {
	return AuthConfig{keys: keys}
}

// Enabled reports whether any keys are configured.
func (c AuthConfig) Enabled() bool {
	return len(c.keys) > 0
}

// Valid reports whether the presented key matches a configured key.
func (c AuthConfig) Valid(key string) bool {
	if key == "" {
		return false
	}
	for _, candidate := range c.keys {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(key)) == 1 {
			return true
		}
	}
	return false
}

// WriteProtect returns middleware that requires a valid API key on mutating
// methods (POST, PUT, PATCH, DELETE). Read methods always pass. With auth
// disabled, everything passes.
func WriteProtect(config AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled() || !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Valid(r.Header.Get(apiKeyHeader)) {
				WriteError(w, r, NewAPIError(http.StatusUnauthorized, "invalid or missing API key", nil), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteProtectAuth is a convenience wrapper building the config from keys.
func WriteProtectAuth(keys []string) func(http.Handler) http.Handler {
	return WriteProtect(NewAuthConfigWithKeys(keys))
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
