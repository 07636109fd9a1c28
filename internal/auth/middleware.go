package auth

import (
	"context"
	"net/http"
)

// contextKey is unexported to avoid collisions with other packages.
type contextKey string

const userContextKey contextKey = "user"

// SessionCookieName is the cookie carrying the session id.
const SessionCookieName = "session_id"

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userContextKey).(*User)
	return u
}

// WithUser returns a context carrying the given user. Exported for
// handler tests.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// RequireUser is middleware that resolves the session cookie to a user
// and rejects unauthenticated requests with a JSON 401.
func RequireUser(store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
				return
			}

			user, err := store.ValidateSession(r.Context(), cookie.Value)
			if err != nil {
				// Clear the dead cookie so clients stop sending it.
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
				})
				http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
