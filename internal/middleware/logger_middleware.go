package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"simple-notes-server/internal/metrics"
	"simple-notes-server/internal/session"

	"github.com/sirupsen/logrus"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs every request and records the HTTP metrics. It wraps
// the route guard so guard rejections are logged and counted like any other
// response. The metric path label collapses per-note segments so note IDs
// don't explode the label cardinality.
func RequestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)

			// The guard fills the identity header on the shared header map,
			// so it is visible here even though the logger wraps the guard.
			userID := r.Header.Get(session.UserIDHeader)
			if userID == "" {
				userID = "anonymous"
			}

			path := metricPath(r.URL.Path)
			metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(rw.statusCode)).Inc()
			metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration.Seconds())

			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"remote":   r.RemoteAddr,
				"status":   rw.statusCode,
				"duration": duration.String(),
				"user":     userID,
			}).Info("request handled")
		})
	}
}

func metricPath(path string) string {
	if strings.HasPrefix(path, "/api/notes/") {
		return "/api/notes/{id}"
	}
	if strings.HasPrefix(path, "/notes/") {
		return "/notes/{id}"
	}
	return path
}
