package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// contextKey is unexported so no other package can read or shadow the value.
type contextKey string

const userIDKey contextKey = "userID"

// CookieName is the HttpOnly cookie holding the session token.
const CookieName = "token"

// RequireAuth rejects requests without a valid session with 401 and a JSON
// body, and otherwise stores the user id in the request context.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"غير مصرح"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// OptionalAuth identifies the user when a valid token is present and lets
// anonymous requests through untouched.
//
// MIDDLEWARE PATTERN:
// Both constructors return func(http.Handler) http.Handler, the shape
// chi's r.Use expects. The token service is captured once at wiring time.
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, err := extractUserID(r, tokens); err == nil {
				r = r.WithContext(WithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUserID returns ctx carrying userID. Handler tests use it to skip the
// middleware.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns ("", false) for anonymous requests.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

var errNoToken = errors.New("auth: no token")

// extractUserID prefers the Authorization header and falls back to the
// session cookie.
//
// TOKEN SOURCES:
//   Authorization: Bearer <jwt>   API clients and scripts
//   Cookie: token=<jwt>           the browser, set HttpOnly at login
//
// A malformed Authorization header is not retried against the cookie.
func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		raw, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			return "", errNoToken
		}
		return tokens.Validate(strings.TrimSpace(raw))
	}

	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", errNoToken
	}
	return tokens.Validate(cookie.Value)
}
