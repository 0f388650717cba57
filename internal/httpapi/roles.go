// internal/httpapi/roles.go
//
// Handlers for /roles.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ppghub/ppghub/internal/problem"
	"github.com/ppghub/ppghub/internal/role"
)

const roleNotFound = "Role não encontrada."

func (a *API) roleRoutes(r chi.Router) {
	mount(r, entityRoutes{
		create: a.createRole,
		list:   a.listRoles,
		get:    a.getRole,
		put:    a.putRole,
		patch:  a.patchRole,
		del:    a.deleteRole,
	})
}

func (a *API) createRole(w http.ResponseWriter, r *http.Request) {
	var p role.CreatePayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if ve := p.Validate(); ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}

	row, err := role.Create(r.Context(), a.db, p.Row())
	if err != nil {
		a.storeProblem(w, r, "role", roleNotFound, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/roles/%d", row.ID))
	writeJSON(w, http.StatusCreated, row)
}

func (a *API) listRoles(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	active := queryBool(r, "ativo")

	rows, total, err := role.List(r.Context(), a.db, active, limit, offset)
	if err != nil {
		a.storeProblem(w, r, "role", roleNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, page{Data: rows, Meta: pageMeta{Total: total, Limit: limit, Offset: offset}})
}

func (a *API) getRole(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	row, err := role.ByID(r.Context(), a.db, id)
	if err != nil {
		a.storeProblem(w, r, "role", roleNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) putRole(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var p role.PutPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if ve := p.Validate(); ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}
	if _, err := role.ByID(r.Context(), a.db, id); err != nil {
		a.storeProblem(w, r, "role", roleNotFound, err)
		return
	}

	row, err := role.Update(r.Context(), a.db, id, p.Changeset())
	if err != nil {
		a.storeProblem(w, r, "role", roleNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) patchRole(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var p role.PatchPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	cs, ve := p.Changeset()
	if ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}

	current, err := role.ByID(r.Context(), a.db, id)
	if err != nil {
		a.storeProblem(w, r, "role", roleNotFound, err)
		return
	}
	if cs.Empty() {
		writeJSON(w, http.StatusOK, current)
		return
	}

	row, err := role.Update(r.Context(), a.db, id, cs)
	if err != nil {
		a.storeProblem(w, r, "role", roleNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) deleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := role.Delete(r.Context(), a.db, id); err != nil {
		a.storeProblem(w, r, "role", roleNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted{Message: "Role desativada com sucesso."})
}
