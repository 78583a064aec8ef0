
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sproutfi/stash/internal/infrastructure/metrics"
)

// Metrics middleware records HTTP metrics.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			path := normalizePath(r.URL.Path)

			m.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses resource IDs to keep label cardinality bounded.
// /api/v1/plans/01ABC123/withdraw -> /api/v1/plans/:id/withdraw
func normalizePath(path string) string {
	const plansPrefix = "/api/v1/plans/"
	if strings.HasPrefix(path, plansPrefix) && len(path) > len(plansPrefix) {
		rest := path[len(plansPrefix):]
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			return plansPrefix + ":id" + rest[idx:]
		}
		return plansPrefix + ":id"
	}
	return path
}
