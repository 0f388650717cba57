// internal/httpapi/respond.go
//
// Shared request/response plumbing for the entity handlers.
//
// Context
// -------
// Success bodies are plain JSON; every failure goes through
// internal/problem so the wire shape stays uniform.  Malformed JSON and
// bad path ids are client errors (422), storage errors are mapped by
// storeProblem, and anything unrecognized is logged and returned as the
// neutral 500.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ppghub/ppghub/internal/metrics"
	"github.com/ppghub/ppghub/internal/problem"
	"github.com/ppghub/ppghub/internal/store"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// page is the list-response envelope.
type page struct {
	Data any      `json:"data"`
	Meta pageMeta `json:"meta"`
}

type pageMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// deleted is the DELETE success body.
type deleted struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorw("response encode failed", "err", err, "status", status)
	}
}

// decodeJSON fills dst from the request body.  Unknown fields are
// ignored on purpose; syntactically broken JSON and type mismatches are
// a 422 on the synthetic "body" field.  Returns false when the response
// has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		problem.Write(w, problem.Validation(r, []problem.ValidationItem{
			{Field: "body", Message: "JSON inválido: " + err.Error(), Kind: "invalid_json"},
		}))
		return false
	}
	return true
}

// idParam parses the {id} path segment.  Non-numeric ids are a 422,
// matching the treatment of any other malformed input.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		problem.Write(w, problem.Validation(r, []problem.ValidationItem{
			{Field: "id", Message: "identificador inválido: " + raw, Kind: "invalid_id"},
		}))
		return 0, false
	}
	return id, true
}

// pageParams reads limit/offset with defaults and a hard ceiling.
func pageParams(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// queryInt64 reads an optional numeric filter, nil when absent or
// unparsable.
func queryInt64(r *http.Request, name string) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// queryBool reads an optional boolean filter, nil when absent or
// unparsable.
func queryBool(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

// storeProblem maps a repository error onto the problem taxonomy.
// notFoundDetail is the per-entity 404 sentence.
func (a *API) storeProblem(w http.ResponseWriter, r *http.Request, entity, notFoundDetail string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		metrics.NotFoundTotal.Inc()
		problem.Write(w, problem.NotFound(r, notFoundDetail))
	case store.IsConstraint(err):
		var ce *store.ConstraintError
		errors.As(err, &ce)
		metrics.ConflictsTotal.WithLabelValues(entity).Inc()
		zap.S().Infow("constraint violation",
			"entity", entity, "kind", ce.Kind, "key", ce.Key, "code", ce.Code)
		problem.Write(w, problem.Conflict(r, ce))
	default:
		zap.S().Errorw("storage failure", "entity", entity, "err", err)
		problem.Write(w, problem.Internal(r, err, a.cfg.App.Debug))
	}
}
