package metrics

import (
	"net/http"
	"time"
)

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// HTTPMiddleware returns HTTP middleware that records metrics for each
// request, keyed by the matched route pattern. Responses with a 5xx
// status count as errors.
func HTTPMiddleware(collector *Collector, exporter *PrometheusExporter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			// The mux fills in r.Pattern after matching; unmatched
			// requests fall back to the method and raw path.
			route := r.Pattern
			if route == "" {
				route = r.Method + " " + r.URL.Path
			}

			collector.RecordRequest(route)
			if exporter != nil {
				exporter.RecordRequest(route)
			}

			duration := time.Since(start).Seconds()
			collector.RecordDuration(route, duration)
			if exporter != nil {
				exporter.RecordDuration(route, duration)
			}

			if rec.status >= http.StatusInternalServerError {
				collector.RecordError(route)
				if exporter != nil {
					exporter.RecordError(route)
				}
			}
		})
	}
}
