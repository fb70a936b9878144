package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docsai-app/docsai-backend/internal/auth"
	pkgerrors "github.com/docsai-app/docsai-backend/pkg/errors"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error)
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.loginFn(ctx, req)
}

type stubRegisterService struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) error
}

func (s *stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) error {
	return s.registerFn(ctx, req)
}

func TestAuthLoginReturnsTokens(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
			if req.Email != "user@example.com" {
				t.Fatalf("login email = %q", req.Email)
			}
			return &auth.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"user@example.com","password":"secret"}`))
	w := httptest.NewRecorder()
	AuthLogin(svc, nil).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"access_token":"access"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestAuthLoginRejectsMissingFields(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"user@example.com"}`))
	w := httptest.NewRecorder()
	AuthLogin(svc, nil).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAuthLoginMapsUnauthorized(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"user@example.com","password":"wrong"}`))
	w := httptest.NewRecorder()
	AuthLogin(svc, nil).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthRegisterCreatesAccount(t *testing.T) {
	var got auth.RegisterRequest
	svc := &stubRegisterService{
		registerFn: func(_ context.Context, req auth.RegisterRequest) error {
			got = req
			return nil
		},
	}

	payload := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"longenough","accept_tos":true}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(payload))
	w := httptest.NewRecorder()
	AuthRegister(svc, nil).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if got.Email != "ada@example.com" || !got.AcceptTOS {
		t.Fatalf("register request = %+v", got)
	}
}

func TestAuthRegisterConflictOnDuplicateEmail(t *testing.T) {
	svc := &stubRegisterService{
		registerFn: func(context.Context, auth.RegisterRequest) error {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		},
	}

	payload := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"longenough","accept_tos":true}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(payload))
	w := httptest.NewRecorder()
	AuthRegister(svc, nil).ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}
