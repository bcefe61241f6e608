package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
)

// RequestLogger stores a logger enriched with correlation, session, user and
// trace ids in the request context; handlers fetch it with logger.FromContext.
// Mount it after RequestLogging, Tracing and Session so those ids are set.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
