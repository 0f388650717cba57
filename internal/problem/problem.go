// internal/problem/problem.go
//
// RFC 7807 problem payloads (application/problem+json).
//
// Context
// -------
// Every non-2xx response in the API uses one JSON shape, so clients can
// branch on `type` and `status` without sniffing ad-hoc bodies.  The
// field names and nesting below are a wire contract; renaming any of
// them breaks deployed front-ends.
//
// Four categories exist:
//
//	urn:ppghub:errors:not_found    → 404
//	urn:ppghub:errors:validation   → 422, errors.items lists every field
//	urn:ppghub:errors:conflict     → 409, errors.hint names the collision
//	urn:ppghub:errors:internal     → 500, detail generic unless debug
//
// The constructors never copy raw driver or stack text into the payload.
// Internal detail is logged by the caller and only surfaces to clients
// when the debug toggle (config) is on.
//
// Notes
// -----
// • `instance` is the request URI, `meta.method` the HTTP verb, and
//   `meta.request_id` the id minted by the middleware.
// • Oxford commas, two spaces after periods.
package problem

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ppghub/ppghub/internal/store"
)

// Details is the uniform problem body.  Optional members are omitted
// when empty, matching the original API's exclude-none serialization.
type Details struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Status   int            `json:"status"`
	Detail   string         `json:"detail,omitempty"`
	Instance string         `json:"instance,omitempty"`
	Errors   map[string]any `json:"errors,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// ValidationItem describes one failed field so the client can highlight
// it.  Kind carries the rule that failed ("required", "oneof", "max",
// "not_nullable", ...), not a prose explanation.
type ValidationItem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// ValidationError aggregates every failed field of one request body.  It
// satisfies error so payload resolvers can return it through normal
// error plumbing.
type ValidationError struct {
	Items []ValidationItem
}

func (e *ValidationError) Error() string { return "payload validation failed" }

// Add appends one item and returns the receiver for chaining.
func (e *ValidationError) Add(field, message, kind string) *ValidationError {
	e.Items = append(e.Items, ValidationItem{Field: field, Message: message, Kind: kind})
	return e
}

// Empty reports whether no field failed.
func (e *ValidationError) Empty() bool { return len(e.Items) == 0 }

// base fills the members shared by every category.
func base(r *http.Request, typ, title string, status int) Details {
	pd := Details{
		Type:     typ,
		Title:    title,
		Status:   status,
		Instance: r.URL.RequestURI(),
		Meta:     map[string]any{"method": r.Method},
	}
	if id := r.Header.Get("X-Request-Id"); id != "" {
		pd.Meta["request_id"] = id
	}
	return pd
}

// NotFound builds the 404 payload.  detail is a human sentence such as
// "Instituição não encontrada".
func NotFound(r *http.Request, detail string) Details {
	pd := base(r, "urn:ppghub:errors:not_found", "Not Found", http.StatusNotFound)
	pd.Detail = detail
	return pd
}

// Validation builds the 422 payload listing every offending field.
func Validation(r *http.Request, items []ValidationItem) Details {
	pd := base(r, "urn:ppghub:errors:validation", "Unprocessable Entity",
		http.StatusUnprocessableEntity)
	pd.Detail = "Erros de validação no corpo ou nos parâmetros."
	pd.Errors = map[string]any{"items": items}
	return pd
}

// Conflict translates a storage constraint violation into the 409
// payload.  The hint is included only when the index parse succeeded;
// the raw engine message never leaves the server.
func Conflict(r *http.Request, ce *store.ConstraintError) Details {
	pd := base(r, "urn:ppghub:errors:conflict", "Conflict", http.StatusConflict)
	pd.Detail = "Conflito com restrições do banco de dados."
	pd.Errors = map[string]any{"db_code": ce.Code}
	if ce.Field != "" {
		pd.Errors["hint"] = map[string]any{"field": ce.Field, "value": ce.Value}
	}
	return pd
}

// Internal builds the 500 payload.  The real error text is exposed only
// when debug is set; production callers get a neutral sentence.
func Internal(r *http.Request, err error, debug bool) Details {
	pd := base(r, "urn:ppghub:errors:internal", "Internal Server Error",
		http.StatusInternalServerError)
	if debug && err != nil {
		pd.Detail = err.Error()
	} else {
		pd.Detail = "Ocorreu um erro interno no servidor."
	}
	return pd
}

// Write serializes pd with the problem+json media type.  Encoding errors
// are logged and dropped; headers are already on the wire at that point.
func Write(w http.ResponseWriter, pd Details) {
	w.Header().Set("Content-Type", "application/problem+json; charset=utf-8")
	w.WriteHeader(pd.Status)
	if err := json.NewEncoder(w).Encode(pd); err != nil {
		zap.S().Errorw("problem encode failed", "err", err, "status", pd.Status)
	}
}
