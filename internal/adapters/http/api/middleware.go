// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goldinfc/scorebook/pkg/metrics"
)

// adminPINHeader carries the PIN that gates mutating routes.
const adminPINHeader = "X-Admin-Pin"

// MetricsMiddleware wraps HTTP handlers to record Prometheus metrics.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		durationMs := float64(time.Since(start).Milliseconds())
		statusCodeStr := strconv.Itoa(wrapped.statusCode)
		metrics.RecordHTTPRequest(endpoint, r.Method, statusCodeStr)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, statusCodeStr, durationMs)
	}
}

// checkAdminPIN enforces the PIN gate on mutating requests. An empty
// configured PIN leaves the gate open. Returns false after writing the
// error response when the request is rejected.
func checkAdminPIN(w http.ResponseWriter, r *http.Request, pin string) bool {
	if pin == "" {
		return true
	}
	got := r.Header.Get(adminPINHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(pin)) != 1 {
		writeError(w, http.StatusForbidden, "forbidden", ErrBadPIN)
		return false
	}
	return true
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}
