package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// UserIDKey is the context key under which RequireAuth stores the verified
// user ID.
const UserIDKey = contextKey("userID")

// RequireAuth gates next behind a Bearer token verified by issuer. A missing
// or invalid token yields 403.
func RequireAuth(issuer *TokenIssuer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tokenStr string

		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, "Bearer ")
			if len(parts) == 2 {
				tokenStr = parts[1]
			}
		}

		if tokenStr == "" {
			http.Error(w, "Missing auth token", http.StatusForbidden)
			return
		}

		userID, err := issuer.Verify(tokenStr)
		if err != nil {
			http.Error(w, "Invalid auth token", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user ID stored by RequireAuth, if any.
func UserID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(UserIDKey).(string)
	return id, ok
}
