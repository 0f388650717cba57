// internal/httpapi/users.go
//
// Handlers for /usuarios.  Create hashes the password before it ever
// reaches the repository; the hash never appears in any response.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ppghub/ppghub/internal/problem"
	"github.com/ppghub/ppghub/internal/user"
)

const userNotFound = "Usuário não encontrado."

func (a *API) userRoutes(r chi.Router) {
	mount(r, entityRoutes{
		create: a.createUser,
		list:   a.listUsers,
		get:    a.getUser,
		put:    a.putUser,
		patch:  a.patchUser,
		del:    a.deleteUser,
	})
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	var p user.CreatePayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if ve := p.Validate(); ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}

	row, err := p.Row()
	if err != nil {
		zap.S().Errorw("password hash failed", "err", err)
		problem.Write(w, problem.Internal(r, err, a.cfg.App.Debug))
		return
	}

	created, err := user.Create(r.Context(), a.db, row)
	if err != nil {
		a.storeProblem(w, r, "user", userNotFound, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/usuarios/%d", created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	active := queryBool(r, "ativo")

	rows, total, err := user.List(r.Context(), a.db, active, limit, offset)
	if err != nil {
		a.storeProblem(w, r, "user", userNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, page{Data: rows, Meta: pageMeta{Total: total, Limit: limit, Offset: offset}})
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	row, err := user.ByID(r.Context(), a.db, id)
	if err != nil {
		a.storeProblem(w, r, "user", userNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) putUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var p user.PutPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if ve := p.Validate(); ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}
	if _, err := user.ByID(r.Context(), a.db, id); err != nil {
		a.storeProblem(w, r, "user", userNotFound, err)
		return
	}

	row, err := user.Update(r.Context(), a.db, id, p.Changeset())
	if err != nil {
		a.storeProblem(w, r, "user", userNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) patchUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var p user.PatchPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	cs, ve := p.Changeset()
	if ve != nil {
		problem.Write(w, problem.Validation(r, ve.Items))
		return
	}

	current, err := user.ByID(r.Context(), a.db, id)
	if err != nil {
		a.storeProblem(w, r, "user", userNotFound, err)
		return
	}
	if cs.Empty() {
		writeJSON(w, http.StatusOK, current)
		return
	}

	row, err := user.Update(r.Context(), a.db, id, cs)
	if err != nil {
		a.storeProblem(w, r, "user", userNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := user.Delete(r.Context(), a.db, id); err != nil {
		a.storeProblem(w, r, "user", userNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted{Message: "Usuário desativado com sucesso."})
}
