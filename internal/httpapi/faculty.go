// internal/httpapi/faculty.go
//
// Handlers for /docentes.  The list accepts a programa_id filter.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ppghub/ppghub/internal/faculty"
	"github.com/ppghub/ppghub/internal/problem"
)

const facultyNotFound = "Docente não encontrado."

func (a *API) facultyRoutes(r chi.Router) {
	mount(r, entityRoutes{
		create: a.createFaculty,
		list:   a.listFaculty,
		get:    a.getFaculty,
		put:    a.putFaculty,
		patch:  a.patchFaculty,
		del:    a.deleteFaculty,
	})
}

func (a *API) createFaculty(w http.ResponseWriter, r *http.Request) {
	var p faculty.CreatePayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if ve := p.Validate(); ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}

	row, err := faculty.Create(r.Context(), a.db, p.Row())
	if err != nil {
		a.storeProblem(w, r, "faculty", facultyNotFound, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/docentes/%d", row.ID))
	writeJSON(w, http.StatusCreated, row)
}

func (a *API) listFaculty(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	programID := queryInt64(r, "programa_id")

	rows, total, err := faculty.List(r.Context(), a.db, programID, limit, offset)
	if err != nil {
		a.storeProblem(w, r, "faculty", facultyNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, page{Data: rows, Meta: pageMeta{Total: total, Limit: limit, Offset: offset}})
}

func (a *API) getFaculty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	row, err := faculty.ByID(r.Context(), a.db, id)
	if err != nil {
		a.storeProblem(w, r, "faculty", facultyNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) putFaculty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var p faculty.PutPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if ve := p.Validate(); ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}
	if _, err := faculty.ByID(r.Context(), a.db, id); err != nil {
		a.storeProblem(w, r, "faculty", facultyNotFound, err)
		return
	}

	row, err := faculty.Update(r.Context(), a.db, id, p.Changeset())
	if err != nil {
		a.storeProblem(w, r, "faculty", facultyNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) patchFaculty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var p faculty.PatchPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	cs, ve := p.Changeset()
	if ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}

	current, err := faculty.ByID(r.Context(), a.db, id)
	if err != nil {
		a.storeProblem(w, r, "faculty", facultyNotFound, err)
		return
	}
	if cs.Empty() {
		writeJSON(w, http.StatusOK, current)
		return
	}

	row, err := faculty.Update(r.Context(), a.db, id, cs)
	if err != nil {
		a.storeProblem(w, r, "faculty", facultyNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) deleteFaculty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := faculty.Delete(r.Context(), a.db, id); err != nil {
		a.storeProblem(w, r, "faculty", facultyNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted{Message: "Docente removido com sucesso."})
}
