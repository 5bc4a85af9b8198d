package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	internal_errors "github.com/yogeshrakate/skill-matrix-backend/internal/errors"
	"github.com/yogeshrakate/skill-matrix-backend/internal/logger"
)

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenStr string) (map[string]any, error)
}

type key int

const claimsKey key = 0

// Auth guards protected routes. It expects an "Authorization: Bearer <token>"
// header, validates the token and stores its claims in the request context.
// Missing or invalid credentials are rejected with 401.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "Authorization header missing")
				return
			}

			tokenStr, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenStr == "" {
				unauthorized(w, "Authorization header must use the Bearer scheme")
				return
			}

			claims, err := validator.Validate(tokenStr)
			if err != nil {
				if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
					writeUnauthorized(w, e.StatusCode, e.Message, e.Code)
					return
				}
				unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	writeUnauthorized(w, http.StatusUnauthorized, message, "")
}

// writeUnauthorized emits the same {message, data} envelope the handlers use,
// so clients parse rejections from the auth gate like any other error.
func writeUnauthorized(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := struct {
		Message string         `json:"message"`
		Data    map[string]any `json:"data,omitempty"`
	}{Message: message}
	if code != "" {
		body.Data = map[string]any{"code": code}
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// ClaimsFromContext returns the token claims stored by Auth, or nil
// when the request did not pass through it.
func ClaimsFromContext(ctx context.Context) map[string]any {
	claims, ok := ctx.Value(claimsKey).(map[string]any)
	if !ok {
		return nil
	}
	return claims
}
