// File: internal/middleware/logger.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// LoggingMiddleware tags each request with an ID and logs method, path and
// duration once the handler returns.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Printf(
			"Request: %s %s from %s | ID: %s | Duration: %v",
			r.Method,
			r.RequestURI,
			r.RemoteAddr,
			requestID,
			time.Since(start),
		)
	})
}
