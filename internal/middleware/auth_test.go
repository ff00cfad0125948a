package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homeacc/internal/auth"
)

type stubRevocations map[string]bool

func (s stubRevocations) IsRevoked(_ context.Context, token string) (bool, error) {
	return s[token], nil
}

func rejectHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called")
	})
}

func TestAuthMissingHeader(t *testing.T) {
	handler := Auth("secret", nil)(rejectHandler(t))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	var body errorBody
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil || body.Message == "" || body.Timestamp == "" {
		t.Fatalf("expected json error body, got %q", rr.Body.String())
	}
}

func TestAuthInvalidHeader(t *testing.T) {
	handler := Auth("secret", nil)(rejectHandler(t))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	handler := Auth("secret", nil)(rejectHandler(t))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuthRevokedToken(t *testing.T) {
	token, err := auth.GenerateToken("secret", "user-1", "USER", time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	handler := Auth("secret", stubRevocations{token: true})(rejectHandler(t))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuthValidToken(t *testing.T) {
	token, err := auth.GenerateToken("secret", "user-1", "ADMIN", time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	handler := Auth("secret", stubRevocations{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok || userID != "user-1" {
			t.Fatalf("expected user-1 in context")
		}
		if RoleFromContext(r.Context()) != "ADMIN" {
			t.Fatalf("expected ADMIN role in context")
		}
		tok, ok := TokenFromContext(r.Context())
		if !ok || tok.Raw != token || tok.ExpiresAt.IsZero() {
			t.Fatalf("expected raw token in context, got %+v", tok)
		}
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestAuthQueryToken(t *testing.T) {
	token, err := auth.GenerateToken("secret", "user-2", "USER", time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	handler := Auth("secret", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/balances?token="+token, nil)
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}
