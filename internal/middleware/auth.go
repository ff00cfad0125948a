package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"homeacc/internal/auth"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	roleKey   contextKey = "role"
	tokenKey  contextKey = "token"
)

// RevocationChecker reports whether a token was logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Token is the raw bearer token of the request and its expiry.
type Token struct {
	Raw       string
	ExpiresAt time.Time
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

func TokenFromContext(ctx context.Context) (Token, bool) {
	token, ok := ctx.Value(tokenKey).(Token)
	return token, ok
}

// Auth accepts "Authorization: Bearer <jwt>" or, for websocket upgrades that
// cannot set headers, a token query parameter.
func Auth(secret string, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			claims, err := auth.ParseToken(secret, raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if revoked != nil {
				isRevoked, err := revoked.IsRevoked(r.Context(), raw)
				if err != nil {
					log.Printf("token blacklist lookup failed: %v", err)
					writeError(w, http.StatusInternalServerError, "unable to verify token")
					return
				}
				if isRevoked {
					writeError(w, http.StatusUnauthorized, "token has been revoked")
					return
				}
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			ctx = context.WithValue(ctx, tokenKey, Token{Raw: raw, ExpiresAt: claims.Expiry(0)})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		token := r.URL.Query().Get("token")
		return token, token != ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

type errorBody struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Message: message, Timestamp: time.Now().Format(time.RFC3339)})
}
