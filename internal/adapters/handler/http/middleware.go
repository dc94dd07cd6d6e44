package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/storekit/catalog/internal/core/ports"
)

type contextKey string

// UserIDKey holds the verified identity of the caller. It is set only by the
// Authenticator middleware; handlers read it instead of any ambient state.
const UserIDKey contextKey = "userID"

// Authenticator rejects requests without a valid bearer token and threads
// the token's user ID through the request context.
func Authenticator(tokens ports.TokenProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, http.StatusUnauthorized, "Unauthenticated")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unauthenticated")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user ID set by Authenticator.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
