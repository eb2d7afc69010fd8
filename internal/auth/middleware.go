package auth

import (
	"context"
	"net/http"

	"github.com/ghinaaj20-lang/luna-project/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

type contextKey struct{}

var userIDKey contextKey

// RequireUser rejects anonymous requests with 401 and stashes the
// authenticated user id in the request context for handlers.
func RequireUser(store *sessions.CookieStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := SessionUserID(r, store)
			if !ok {
				utils.RespondJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalUser stashes the user id when a valid session is present but
// lets anonymous requests through. Public reads use it so responses can
// still be personalized (is_liked).
func OptionalUser(store *sessions.CookieStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := SessionUserID(r, store); ok {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserID returns the authenticated user id from the request context.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}
