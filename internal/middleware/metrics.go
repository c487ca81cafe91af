package middleware

import (
	"net/http"
	"time"

	"github.com/tweesky/treedoc/internal/metrics"
)

// Metrics returns a middleware that reports every request to recorder,
// labelled by the matched route pattern.
func Metrics(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			recorder.ObserveRequest(routePattern(r), r.Method, wrapped.status, time.Since(start))
		})
	}
}
