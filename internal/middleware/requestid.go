// internal/middleware/requestid.go
//
// Request-id minting.
//
// Context
// -------
// Every request carries an X-Request-Id so a client report can be joined
// against the access log and any problem payload (problem.Details puts
// the id in meta.request_id).  Ids supplied by a trusted proxy are kept;
// otherwise a fresh UUID is minted.  The header is set on both the
// request (for downstream handlers) and the response.
package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID ensures every request has an id before anything else runs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}
