package middleware

import (
	"context"
	"log"
	"net/http"
)

type AdminChecker interface {
	IsAdmin(ctx context.Context, customerID string) (bool, error)
}

// RequireAdmin must run after Auth.
func RequireAdmin(checker AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customerID, ok := UserIDFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			isAdmin, err := checker.IsAdmin(r.Context(), customerID)
			if err != nil {
				log.Printf("admin check for %s failed: %v", customerID, err)
				writeError(w, http.StatusInternalServerError, "unable to verify admin")
				return
			}
			if !isAdmin {
				writeError(w, http.StatusForbidden, "admin privileges required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
