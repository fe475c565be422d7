package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// loggingMiddleware shims in a handler middleware that logs requests.
func loggingMiddleware(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug().Str("method", r.Method).Str("uri", r.RequestURI).Int64("content_length", r.ContentLength).Dur("took", time.Since(start)).Msg("request")
		})
	}
}
