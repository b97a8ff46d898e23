package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

var corsOptions = []handlers.CORSOption{
	handlers.AllowedOrigins([]string{"*"}),
	handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
	handlers.AllowedHeaders([]string{"Content-Type", RequestIDHeader}),
	handlers.OptionStatusCode(http.StatusNoContent),
}

// CORS allows any origin and answers preflight requests with 204.
func CORS(next http.Handler) http.Handler {
	return handlers.CORS(corsOptions...)(next)
}

// Recover turns a handler panic into a 500 and logs it at error level.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
		handlers.PrintRecoveryStack(false),
	)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger assigns a request ID (reusing a client-supplied one) and logs
// one line per request.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			logger.LogAttrs(r.Context(), slog.LevelInfo, "http request",
				slog.String("request_id", id),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Wrap applies the middleware every service shares: CORS outermost, then
// request logging, then panic recovery next to the router.
func Wrap(router http.Handler, logger *slog.Logger) http.Handler {
	return CORS(RequestLogger(logger)(Recover(logger)(router)))
}
