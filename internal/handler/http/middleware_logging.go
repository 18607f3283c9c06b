package http

import (
	"net/http"

	"github.com/MKhiriev/go-aliyah/internal/logger"
)

// withLogging writes one access log line per request. Query strings are not
// logged.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := h.options.Clock.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		status := lw.status
		if status == 0 {
			status = http.StatusOK
		}

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Int("status", status).
			Dur("duration", h.options.Clock.Since(start)).
			Int("size", lw.size).
			Msg("request handled")
	})
}
