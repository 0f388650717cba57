// internal/httpapi/memberships.go
//
// Handlers for /vinculos.  The list accepts usuario_id and programa_id
// filters, separately or combined.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ppghub/ppghub/internal/membership"
	"github.com/ppghub/ppghub/internal/problem"
)

const membershipNotFound = "Vínculo não encontrado."

func (a *API) membershipRoutes(r chi.Router) {
	mount(r, entityRoutes{
		create: a.createMembership,
		list:   a.listMemberships,
		get:    a.getMembership,
		put:    a.putMembership,
		patch:  a.patchMembership,
		del:    a.deleteMembership,
	})
}

func (a *API) createMembership(w http.ResponseWriter, r *http.Request) {
	var p membership.CreatePayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if ve := p.Validate(); ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}

	row, err := membership.Create(r.Context(), a.db, p.Row())
	if err != nil {
		a.storeProblem(w, r, "membership", membershipNotFound, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/vinculos/%d", row.ID))
	writeJSON(w, http.StatusCreated, row)
}

func (a *API) listMemberships(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	f := membership.Filter{
		UserID:    queryInt64(r, "usuario_id"),
		ProgramID: queryInt64(r, "programa_id"),
	}

	rows, total, err := membership.List(r.Context(), a.db, f, limit, offset)
	if err != nil {
		a.storeProblem(w, r, "membership", membershipNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, page{Data: rows, Meta: pageMeta{Total: total, Limit: limit, Offset: offset}})
}

func (a *API) getMembership(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	row, err := membership.ByID(r.Context(), a.db, id)
	if err != nil {
		a.storeProblem(w, r, "membership", membershipNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) putMembership(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var p membership.PutPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if ve := p.Validate(); ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}
	if _, err := membership.ByID(r.Context(), a.db, id); err != nil {
		a.storeProblem(w, r, "membership", membershipNotFound, err)
		return
	}

	row, err := membership.Update(r.Context(), a.db, id, p.Changeset())
	if err != nil {
		a.storeProblem(w, r, "membership", membershipNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) patchMembership(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var p membership.PatchPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	cs, ve := p.Changeset()
	if ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}

	current, err := membership.ByID(r.Context(), a.db, id)
	if err != nil {
		a.storeProblem(w, r, "membership", membershipNotFound, err)
		return
	}
	if cs.Empty() {
		writeJSON(w, http.StatusOK, current)
		return
	}

	row, err := membership.Update(r.Context(), a.db, id, cs)
	if err != nil {
		a.storeProblem(w, r, "membership", membershipNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) deleteMembership(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := membership.Delete(r.Context(), a.db, id); err != nil {
		a.storeProblem(w, r, "membership", membershipNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted{Message: "Vínculo removido com sucesso."})
}
