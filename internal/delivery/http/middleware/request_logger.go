package middleware

import (
	"net/http"
	"productos-api/pkg/logger"
	"productos-api/pkg/utils"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestLogger tags each request with a short id, stores a request scoped
// logger in the context and writes one access line when the handler returns.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := uuid.New().String()[:8]
		reqLog := logger.WithRequestID(requestID)
		r = r.WithContext(logger.NewContext(r.Context(), &reqLog))
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		accessEvent(&reqLog, rec.status).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", rec.status).
			Dur("duration_ms", time.Since(start)).
			Str("remote_ip", remoteHost(r)).
			Str("forwarded_for", r.Header.Get("X-Forwarded-For")).
			Str("origin", r.Header.Get("Origin")).
			Str("user_agent", r.UserAgent()).
			Str("user_id", callerID(r)).
			Msg("HTTP")
	})
}

// accessEvent picks the level from the response class.
func accessEvent(l *zerolog.Logger, status int) *zerolog.Event {
	switch {
	case status >= 500:
		return l.Error()
	case status >= 400:
		return l.Warn()
	default:
		return l.Info()
	}
}

func callerID(r *http.Request) string {
	if claims, err := utils.ExtractClaims(r); err == nil && claims != nil {
		return claims.UserID
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}
