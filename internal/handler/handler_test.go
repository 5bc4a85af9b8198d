package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yogeshrakate/skill-matrix-backend/internal/domain"
	"github.com/yogeshrakate/skill-matrix-backend/internal/service"
)

func createRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) (string, map[string]any) {
	t.Helper()
	var resp struct {
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp.Message, resp.Data
}

type MockAuthService struct {
	MockSignup         func(ctx context.Context, fullName, email, pass, confirm string) (service.SignupResult, error)
	MockVerifyEmail    func(ctx context.Context, linkToken, suppliedEmail string) (domain.Email, error)
	MockLogin          func(ctx context.Context, email, pass string) (string, error)
	MockForgotPassword func(ctx context.Context, email domain.Email) error
	MockUpdatePassword func(ctx context.Context, email domain.Email, pass, confirm string) error
}

func (m *MockAuthService) Signup(ctx context.Context, fullName, email, pass, confirm string) (service.SignupResult, error) {
	if m.MockSignup != nil {
		return m.MockSignup(ctx, fullName, email, pass, confirm)
	}
	return service.SignupResult{}, nil
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, linkToken, suppliedEmail string) (domain.Email, error) {
	if m.MockVerifyEmail != nil {
		return m.MockVerifyEmail(ctx, linkToken, suppliedEmail)
	}
	return "", nil
}

func (m *MockAuthService) Login(ctx context.Context, email, pass string) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(ctx, email, pass)
	}
	return "", nil
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email domain.Email) error {
	if m.MockForgotPassword != nil {
		return m.MockForgotPassword(ctx, email)
	}
	return nil
}

func (m *MockAuthService) UpdatePassword(ctx context.Context, email domain.Email, pass, confirm string) error {
	if m.MockUpdatePassword != nil {
		return m.MockUpdatePassword(ctx, email, pass, confirm)
	}
	return nil
}

type MockEntityService struct {
	MockCreate func(ctx context.Context, tag string, values map[string]string) (domain.EntityRecord, error)
	MockGet    func(ctx context.Context, tag, id string) (domain.EntityRecord, error)
	MockList   func(ctx context.Context, tag string, offset, limit int) ([]domain.EntityRecord, error)
	MockUpdate func(ctx context.Context, tag, id string, values map[string]string) error
	MockDelete func(ctx context.Context, tag, id string) error
}

func (m *MockEntityService) Create(ctx context.Context, tag string, values map[string]string) (domain.EntityRecord, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, tag, values)
	}
	return domain.EntityRecord{}, nil
}

func (m *MockEntityService) Get(ctx context.Context, tag, id string) (domain.EntityRecord, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, tag, id)
	}
	return domain.EntityRecord{}, nil
}

func (m *MockEntityService) List(ctx context.Context, tag string, offset, limit int) ([]domain.EntityRecord, error) {
	if m.MockList != nil {
		return m.MockList(ctx, tag, offset, limit)
	}
	return nil, nil
}

func (m *MockEntityService) Update(ctx context.Context, tag, id string, values map[string]string) error {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, tag, id, values)
	}
	return nil
}

func (m *MockEntityService) Delete(ctx context.Context, tag, id string) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, tag, id)
	}
	return nil
}
