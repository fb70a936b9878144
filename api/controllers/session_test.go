package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/docsai-app/docsai-backend/pkg/auth"
	"github.com/docsai-app/docsai-backend/pkg/auth/session"
	"github.com/docsai-app/docsai-backend/pkg/config"
	"github.com/docsai-app/docsai-backend/pkg/types"
)

type stubRotator struct {
	rotatedOld   string
	rotatedToken string
	rotateErr    error
	revoked      string
	revokeErr    error
}

func (s *stubRotator) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	s.rotatedOld = oldAccessID
	s.rotatedToken = provided
	return "new-access-id", "new-refresh-token", nil
}

func (s *stubRotator) Revoke(_ context.Context, accessID string) error {
	s.revoked = accessID
	return s.revokeErr
}

func sessionJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "docsai",
		ExpirationMinutes: 15,
	}
}

func sessionToken(t *testing.T, cfg config.JWTConfig, jti string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthRefreshRotatesSession(t *testing.T) {
	cfg := sessionJWTConfig()
	rotator := &stubRotator{}
	handler := AuthRefresh(rotator, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refresh_token":"current-refresh"}`))
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, cfg, "session-7"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if rotator.rotatedOld != "session-7" || rotator.rotatedToken != "current-refresh" {
		t.Fatalf("rotate called with (%q, %q)", rotator.rotatedOld, rotator.rotatedToken)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	payload := body.Data.(map[string]any)
	if payload["refresh_token"] != "new-refresh-token" {
		t.Fatalf("refresh token = %v", payload["refresh_token"])
	}
	if payload["access_token"] == "" {
		t.Fatal("missing access token")
	}
}

func TestAuthRefreshRejectsInvalidRefreshToken(t *testing.T) {
	cfg := sessionJWTConfig()
	rotator := &stubRotator{rotateErr: session.ErrInvalidRefreshToken}
	handler := AuthRefresh(rotator, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refresh_token":"stale"}`))
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, cfg, "session-7"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthRefreshRequiresBearerToken(t *testing.T) {
	handler := AuthRefresh(&stubRotator{}, sessionJWTConfig(), nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refresh_token":"x"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	cfg := sessionJWTConfig()
	rotator := &stubRotator{}
	handler := AuthLogout(rotator, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, cfg, "session-9"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if rotator.revoked != "session-9" {
		t.Fatalf("revoked jti = %q, want session-9", rotator.revoked)
	}
}
