// Package middleware provides the HTTP middleware shared by every route:
// request IDs, request-scoped loggers, security headers, request timeouts
// and Prometheus request metrics.
package middleware

// contextKey is a private type for context keys to avoid collisions.
type contextKey string
