package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_errors "github.com/yogeshrakate/skill-matrix-backend/internal/errors"
	"github.com/yogeshrakate/skill-matrix-backend/internal/token"
)

func protectedHandler(t *testing.T, gotClaims *map[string]any) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotClaims = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	issuer := token.New("testSecret", time.Minute*10)

	t.Run("valid bearer token", func(t *testing.T) {
		accessToken, err := issuer.Issue(map[string]any{"email": "jane@example.com"})
		require.NoError(t, err)

		var claims map[string]any
		handler := Auth(issuer)(protectedHandler(t, &claims))

		req := httptest.NewRequest(http.MethodGet, "/admin/skill/", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, claims)
		assert.Equal(t, "jane@example.com", claims["email"])
	})

	t.Run("missing header", func(t *testing.T) {
		var claims map[string]any
		handler := Auth(issuer)(protectedHandler(t, &claims))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/skill/", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, claims)

		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		var resp struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "Authorization header missing", resp.Message)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		var claims map[string]any
		handler := Auth(issuer)(protectedHandler(t, &claims))

		req := httptest.NewRequest(http.MethodGet, "/admin/skill/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		var claims map[string]any
		handler := Auth(issuer)(protectedHandler(t, &claims))

		req := httptest.NewRequest(http.MethodGet, "/admin/skill/", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, claims)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredIssuer := token.New("testSecret", -time.Minute)
		accessToken, err := expiredIssuer.Issue(map[string]any{"email": "jane@example.com"})
		require.NoError(t, err)

		var claims map[string]any
		handler := Auth(issuer)(protectedHandler(t, &claims))

		req := httptest.NewRequest(http.MethodGet, "/admin/skill/", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		var resp struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, internal_errors.CodeTokenExpired, resp.Data["code"])
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		otherIssuer := token.New("otherSecret", time.Minute*10)
		accessToken, err := otherIssuer.Issue(map[string]any{"email": "jane@example.com"})
		require.NoError(t, err)

		var claims map[string]any
		handler := Auth(issuer)(protectedHandler(t, &claims))

		req := httptest.NewRequest(http.MethodGet, "/admin/skill/", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestClaimsFromContext(t *testing.T) {
	assert.Nil(t, ClaimsFromContext(context.Background()))
}
