// internal/middleware/accesslog.go
//
// Access logging and request metrics.
//
// Context
// -------
// One INFO span per served request, written through the global zap
// logger, plus the Prometheus counters in internal/metrics.  The span
// includes the UA and Geo attributes collected by requestinfo.Enrich
// when that middleware ran earlier in the chain.
//
// The chi route pattern (e.g. "/instituicoes/{id}") is used as the
// metrics label instead of the raw path so cardinality stays bounded.
package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ppghub/ppghub/internal/metrics"
	"github.com/ppghub/ppghub/internal/requestinfo"
)

// statusWriter captures the response code for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// AccessLog wraps next with per-request logging and metrics.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(r.Method, route, sw.status, elapsed.Seconds())

		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"elapsed_ms", elapsed.Milliseconds(),
			"request_id", r.Header.Get(requestIDHeader),
		}
		if info := requestinfo.FromContext(r.Context()); info != nil {
			fields = append(fields,
				"ip", info.Geo.IP,
				"country", info.Geo.CountryISO,
				"browser", info.UA.Browser,
				"bot", info.UA.IsBot,
			)
		}
		zap.S().Infow("request served", fields...)
	})
}
