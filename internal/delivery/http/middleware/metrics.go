package middleware

import (
	"net/http"
	"strconv"
	"time"

	"conventions/internal/platform/metrics"
)

// Metrics records request latency by route pattern. The pattern is read after
// the mux has matched, so Metrics must wrap the mux directly or through
// middleware that passes the same *http.Request along.
func Metrics(m *metrics.Metrics, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTPRequest(r.Method, route, strconv.Itoa(wrapped.status), time.Since(start))
	})
}
