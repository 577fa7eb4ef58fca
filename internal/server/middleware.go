package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// requestLogger attaches a request-scoped child logger with a request id to
// the context and logs one line per handled request.
func requestLogger(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := base.With().
				Str("request_id", uuid.NewString()).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Logger()
			start := time.Now()
			next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
			log.Info().Dur("duration", time.Since(start)).Msg("request handled")
		})
	}
}
