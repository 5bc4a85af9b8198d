package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogeshrakate/skill-matrix-backend/internal/crypto"
	"github.com/yogeshrakate/skill-matrix-backend/internal/domain"
	internal_errors "github.com/yogeshrakate/skill-matrix-backend/internal/errors"
	"github.com/yogeshrakate/skill-matrix-backend/internal/handler"
	"github.com/yogeshrakate/skill-matrix-backend/internal/mailer"
	"github.com/yogeshrakate/skill-matrix-backend/internal/service"
	"github.com/yogeshrakate/skill-matrix-backend/internal/setup"
	"github.com/yogeshrakate/skill-matrix-backend/internal/token"
)

// memoryStore is an in-memory AuthStorage for exercising the full
// HTTP surface without a database.
type memoryStore struct {
	mu    sync.Mutex
	users map[domain.Email]domain.User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[domain.Email]domain.User)}
}

func (s *memoryStore) SaveUser(ctx context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Email]; exists {
		return domain.User{}, &internal_errors.ErrorWithStatusCode{
			Message:    "Email already registered",
			StatusCode: 400,
			Code:       internal_errors.CodeDuplicateEmail,
		}
	}
	user.CreatedAt = time.Now()
	s.users[user.Email] = user
	return user, nil
}

func (s *memoryStore) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: 404}
	}
	return user, nil
}

func (s *memoryStore) ActivateUser(ctx context.Context, email domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: 404}
	}
	user.Active = true
	s.users[email] = user
	return nil
}

func (s *memoryStore) UpdatePassword(ctx context.Context, email domain.Email, passHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: 404}
	}
	user.PassHash = passHash
	s.users[email] = user
	return nil
}

type recordingSender struct {
	mu     sync.Mutex
	bodies []string
}

func (s *recordingSender) Send(recipient, subject, htmlBody string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies = append(s.bodies, htmlBody)
	return nil
}

func (s *recordingSender) lastBody(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.bodies)
	return s.bodies[len(s.bodies)-1]
}

var hrefRe = regexp.MustCompile(`href="([^"]+)"`)

func extractLinkQuery(t *testing.T, htmlBody string) url.Values {
	t.Helper()
	match := hrefRe.FindStringSubmatch(htmlBody)
	require.Len(t, match, 2)
	parsed, err := url.Parse(match[1])
	require.NoError(t, err)
	return parsed.Query()
}

func newTestRouter(t *testing.T) (http.Handler, *recordingSender) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	cipher, err := crypto.NewLinkCipher(key)
	require.NoError(t, err)

	sender := &recordingSender{}
	dispatcher := mailer.NewDispatcher(sender, cipher, "http://localhost:8080")
	tokens := token.New("testSecret", time.Minute*10)

	auth := service.NewAuth(newMemoryStore(), dispatcher, cipher, tokens)
	h := handler.New(auth, service.NewEntities(nil), nil)

	return New(&setup.Dependencies{Handler: h, Tokens: tokens}), sender
}

func postJSON(t *testing.T, router http.Handler, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestSignupVerifyLoginFlow(t *testing.T) {
	router, sender := newTestRouter(t)

	signupBody := `{"full_name": "Jane Doe", "email_address": "jane@example.com", "password": "secret", "confirm_password": "secret"}`
	rr := postJSON(t, router, "/auth/signup", signupBody)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// Login before verification is rejected.
	rr = postJSON(t, router, "/auth/login", `{"email": "jane@example.com", "password": "secret"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Follow the emailed link.
	query := extractLinkQuery(t, sender.lastBody(t))
	verifyURL := fmt.Sprintf("/auth/verify-email?token=%s&email=%s",
		url.QueryEscape(query.Get("token")), url.QueryEscape(query.Get("email")))
	req := httptest.NewRequest(http.MethodGet, verifyURL, nil)
	verifyRR := httptest.NewRecorder()
	router.ServeHTTP(verifyRR, req)
	require.Equal(t, http.StatusOK, verifyRR.Code, verifyRR.Body.String())

	// Login with the right password now succeeds and returns a token.
	rr = postJSON(t, router, "/auth/login", `{"email": "jane@example.com", "password": "secret"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Data.AccessToken)

	// Wrong password still fails with 400.
	rr = postJSON(t, router, "/auth/login", `{"email": "jane@example.com", "password": "wrong"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// The issued token unlocks the admin surface (storage is absent in
	// this test, so only the auth gate itself is asserted).
	adminReq := httptest.NewRequest(http.MethodGet, "/admin/unknown/", nil)
	adminReq.Header.Set("Authorization", "Bearer "+resp.Data.AccessToken)
	adminRR := httptest.NewRecorder()
	router.ServeHTTP(adminRR, adminReq)
	assert.Equal(t, http.StatusBadRequest, adminRR.Code)

	adminReq = httptest.NewRequest(http.MethodGet, "/admin/unknown/", nil)
	adminRR = httptest.NewRecorder()
	router.ServeHTTP(adminRR, adminReq)
	assert.Equal(t, http.StatusUnauthorized, adminRR.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	router, sender := newTestRouter(t)

	signupBody := `{"full_name": "Jane Doe", "email_address": "jane@example.com", "password": "secret", "confirm_password": "secret"}`
	require.Equal(t, http.StatusOK, postJSON(t, router, "/auth/signup", signupBody).Code)

	query := extractLinkQuery(t, sender.lastBody(t))
	verifyURL := fmt.Sprintf("/auth/verify-email?token=%s&email=%s",
		url.QueryEscape(query.Get("token")), url.QueryEscape(query.Get("email")))
	verifyRR := httptest.NewRecorder()
	router.ServeHTTP(verifyRR, httptest.NewRequest(http.MethodGet, verifyURL, nil))
	require.Equal(t, http.StatusOK, verifyRR.Code)

	rr := postJSON(t, router, "/auth/forgot-password", `{"email_address": "jane@example.com"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resetQuery := extractLinkQuery(t, sender.lastBody(t))
	assert.Equal(t, "true", resetQuery.Get("forgot"))

	rr = postJSON(t, router, "/auth/update-password", `{"email": "jane@example.com", "password": "newpass", "confirm_password": "newpass"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// Old password is rejected, new one works.
	assert.Equal(t, http.StatusBadRequest, postJSON(t, router, "/auth/login", `{"email": "jane@example.com", "password": "secret"}`).Code)
	assert.Equal(t, http.StatusOK, postJSON(t, router, "/auth/login", `{"email": "jane@example.com", "password": "newpass"}`).Code)
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
