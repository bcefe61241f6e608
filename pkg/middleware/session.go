package middleware

import (
	"context"
	"net/http"

	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
)

// SessionHeader echoes the storefront session id on every response.
const SessionHeader = "X-Session-ID"

// Identity reports the session id and, when someone is signed in, the user id.
type Identity func(ctx context.Context) (sessionID, userID string)

// Session stores the current session and user ids in the request context
// for logging and handlers. An empty user id means a guest shopper.
func Session(identity Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sessionID, userID := identity(ctx)

			if sessionID != "" {
				ctx = logger.WithSessionID(ctx, sessionID)
				w.Header().Set(SessionHeader, sessionID)
			}
			if userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
