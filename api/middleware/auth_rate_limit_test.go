package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type memoryLimiterStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newMemoryLimiterStore() *memoryLimiterStore {
	return &memoryLimiterStore{counts: make(map[string]int64)}
}

func (s *memoryLimiterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key]++
	return s.counts[key], nil
}

func loginRequest(email string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"`+email+`","password":"secret"}`))
	req.RemoteAddr = "203.0.113.7:4123"
	return req
}

func TestAuthRateLimitBlocksEmailAfterLimit(t *testing.T) {
	store := newMemoryLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 2)

	var handled int
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled++
	}))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, loginRequest("user@example.com"))
		if w.Code != http.StatusOK {
			t.Fatalf("attempt %d status = %d, want 200", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("user@example.com"))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if handled != 2 {
		t.Fatalf("handled = %d, want 2", handled)
	}

	// A different email is still allowed.
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("other@example.com"))
	if w.Code != http.StatusOK {
		t.Fatalf("other email status = %d, want 200", w.Code)
	}
}

func TestAuthRateLimitBlocksIPAfterLimit(t *testing.T) {
	store := newMemoryLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 1, 0)

	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("a@example.com"))
	if w.Code != http.StatusOK {
		t.Fatalf("first attempt status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("b@example.com"))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)

	var handled bool
	handler := AuthRateLimit(policy, newMemoryLimiterStore(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("user@example.com"))
	if !handled {
		t.Fatal("disabled policy must not block")
	}
}

func TestAuthRateLimitPreservesBodyForHandler(t *testing.T) {
	store := newMemoryLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 5)

	var seenBody string
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		seenBody = string(body)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("user@example.com"))

	if !strings.Contains(seenBody, "user@example.com") {
		t.Fatalf("handler saw body %q", seenBody)
	}
}
