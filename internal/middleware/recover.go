// internal/middleware/recover.go
//
// Catch-all boundary for panics.
//
// Context
// -------
// Handlers return structured problems for every anticipated failure; a
// panic is by definition unanticipated, so it is logged with the stack
// and turned into the generic 500 payload.  The debug flag decides
// whether the panic text reaches the client, mirroring the seam in
// problem.Internal.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/ppghub/ppghub/internal/problem"
)

// Recover converts panics into 500 problem payloads.  debugMode is taken
// once at wiring time from the loaded config.
func Recover(debugMode bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				zap.S().Errorw("panic recovered",
					"panic", rec,
					"path", r.URL.Path,
					"request_id", r.Header.Get(requestIDHeader),
					"stack", string(debug.Stack()),
				)
				problem.Write(w, problem.Internal(r, fmt.Errorf("%v", rec), debugMode))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
