// internal/httpapi/institutions.go
//
// Handlers for /instituicoes.
//
// Context
// -------
// The update flow is the same on every collection: decode, validate
// (422 listing every field), load the current row (404), resolve the
// changeset with immutables stripped, short-circuit when nothing
// changed, and map constraint violations to 409.  This file is the
// fullest rendition; the other entity files follow it.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ppghub/ppghub/internal/institution"
	"github.com/ppghub/ppghub/internal/problem"
)

const institutionNotFound = "Instituição não encontrada."

func (a *API) institutionRoutes(r chi.Router) {
	mount(r, entityRoutes{
		create: a.createInstitution,
		list:   a.listInstitutions,
		get:    a.getInstitution,
		put:    a.putInstitution,
		patch:  a.patchInstitution,
		del:    a.deleteInstitution,
	})
}

func (a *API) createInstitution(w http.ResponseWriter, r *http.Request) {
	var p institution.CreatePayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if ve := p.Validate(); ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}
	p.Normalize()

	row, err := institution.Create(r.Context(), a.db, p.Row())
	if err != nil {
		a.storeProblem(w, r, "institution", institutionNotFound, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/instituicoes/%d", row.ID))
	writeJSON(w, http.StatusCreated, institution.NewRead(*row))
}

func (a *API) listInstitutions(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	rows, total, err := institution.List(r.Context(), a.db, limit, offset)
	if err != nil {
		a.storeProblem(w, r, "institution", institutionNotFound, err)
		return
	}
	data := make([]institution.Read, len(rows))
	for i, row := range rows {
		data[i] = institution.NewRead(row)
	}
	writeJSON(w, http.StatusOK, page{Data: data, Meta: pageMeta{Total: total, Limit: limit, Offset: offset}})
}

func (a *API) getInstitution(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	row, err := institution.ByID(r.Context(), a.db, id)
	if err != nil {
		a.storeProblem(w, r, "institution", institutionNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, institution.NewRead(*row))
}

func (a *API) putInstitution(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var p institution.PutPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if ve := p.Validate(); ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}
	if _, err := institution.ByID(r.Context(), a.db, id); err != nil {
		a.storeProblem(w, r, "institution", institutionNotFound, err)
		return
	}

	row, err := institution.Update(r.Context(), a.db, id, p.Changeset())
	if err != nil {
		a.storeProblem(w, r, "institution", institutionNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, institution.NewRead(*row))
}

func (a *API) patchInstitution(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var p institution.PatchPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	cs, ve := p.Changeset()
	if ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}

	current, err := institution.ByID(r.Context(), a.db, id)
	if err != nil {
		a.storeProblem(w, r, "institution", institutionNotFound, err)
		return
	}
	if cs.Empty() {
		// Nothing survived the merge; the row is untouched and
		// updated_at stays put.
		writeJSON(w, http.StatusOK, institution.NewRead(*current))
		return
	}

	row, err := institution.Update(r.Context(), a.db, id, cs)
	if err != nil {
		a.storeProblem(w, r, "institution", institutionNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, institution.NewRead(*row))
}

func (a *API) deleteInstitution(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := institution.Delete(r.Context(), a.db, id); err != nil {
		a.storeProblem(w, r, "institution", institutionNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted{Message: "Instituição removida com sucesso."})
}
