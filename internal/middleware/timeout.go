package middleware

import (
	"context"
	"net/http"
	"time"
)

// DefaultTimeout bounds catalog-backed requests when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Timeout puts a deadline on the request context. Catalog reads take the
// request context, so a slow backend fails the request instead of holding
// the connection. A non-positive timeout selects DefaultTimeout.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Create a context with timeout
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
