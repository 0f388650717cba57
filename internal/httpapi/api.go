// internal/httpapi/api.go
//
// HTTP surface: one chi router per process, six entity collections plus
// the monitoring endpoints.
//
// Context
// -------
// Collection names on the wire are Portuguese plurals, matching the
// deployed clients.  The middleware chain runs outside the routes:
// request-id minting first, then request enrichment (UA/Geo), the
// access log with metrics, and the panic boundary closest to the
// handlers.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ppghub/ppghub/internal/config"
	"github.com/ppghub/ppghub/internal/middleware"
	"github.com/ppghub/ppghub/internal/problem"
	"github.com/ppghub/ppghub/internal/requestinfo"
)

// API bundles the handler dependencies.
type API struct {
	db  *sqlx.DB
	cfg *config.Config
}

// New builds the handler set over an open pool and a loaded config.
func New(db *sqlx.DB, cfg *config.Config) *API {
	return &API{db: db, cfg: cfg}
}

// Router assembles the middleware chain and every route.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestinfo.Enrich)
	r.Use(middleware.AccessLog)
	r.Use(middleware.Recover(a.cfg.App.Debug))

	r.Get("/healthz", a.healthz)
	r.Get("/readyz", a.readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/instituicoes", a.institutionRoutes)
	r.Route("/programas", a.programRoutes)
	r.Route("/docentes", a.facultyRoutes)
	r.Route("/usuarios", a.userRoutes)
	r.Route("/roles", a.roleRoutes)
	r.Route("/vinculos", a.membershipRoutes)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		problem.Write(w, problem.NotFound(req, "Recurso não encontrado."))
	})

	return r
}

// entityRoutes is the uniform verb set every collection mounts.
type entityRoutes struct {
	create, list, get, put, patch, del http.HandlerFunc
}

func mount(r chi.Router, h entityRoutes) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.put)
	r.Patch("/{id}", h.patch)
	r.Delete("/{id}", h.del)
}
