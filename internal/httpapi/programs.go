// internal/httpapi/programs.go
//
// Handlers for /programas.  Same flow as institutions; the list adds an
// instituicao_id filter.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ppghub/ppghub/internal/problem"
	"github.com/ppghub/ppghub/internal/program"
)

const programNotFound = "Programa não encontrado."

func (a *API) programRoutes(r chi.Router) {
	mount(r, entityRoutes{
		create: a.createProgram,
		list:   a.listPrograms,
		get:    a.getProgram,
		put:    a.putProgram,
		patch:  a.patchProgram,
		del:    a.deleteProgram,
	})
}

func (a *API) createProgram(w http.ResponseWriter, r *http.Request) {
	var p program.CreatePayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if ve := p.Validate(); ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}

	row, err := program.Create(r.Context(), a.db, p.Row())
	if err != nil {
		a.storeProblem(w, r, "program", programNotFound, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/programas/%d", row.ID))
	writeJSON(w, http.StatusCreated, row)
}

func (a *API) listPrograms(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	institutionID := queryInt64(r, "instituicao_id")

	rows, total, err := program.List(r.Context(), a.db, institutionID, limit, offset)
	if err != nil {
		a.storeProblem(w, r, "program", programNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, page{Data: rows, Meta: pageMeta{Total: total, Limit: limit, Offset: offset}})
}

func (a *API) getProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	row, err := program.ByID(r.Context(), a.db, id)
	if err != nil {
		a.storeProblem(w, r, "program", programNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) putProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var p program.PutPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if ve := p.Validate(); ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}
	if _, err := program.ByID(r.Context(), a.db, id); err != nil {
		a.storeProblem(w, r, "program", programNotFound, err)
		return
	}

	row, err := program.Update(r.Context(), a.db, id, p.Changeset())
	if err != nil {
		a.storeProblem(w, r, "program", programNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) patchProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var p program.PatchPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	cs, ve := p.Changeset()
	if ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}

	current, err := program.ByID(r.Context(), a.db, id)
	if err != nil {
		a.storeProblem(w, r, "program", programNotFound, err)
		return
	}
	if cs.Empty() {
		writeJSON(w, http.StatusOK, current)
		return
	}

	row, err := program.Update(r.Context(), a.db, id, cs)
	if err != nil {
		a.storeProblem(w, r, "program", programNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) deleteProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := program.Delete(r.Context(), a.db, id); err != nil {
		a.storeProblem(w, r, "program", programNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted{Message: "Programa removido com sucesso."})
}
