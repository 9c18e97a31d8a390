package httpapi

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(WithRequestID)
	r.Use(WithLogging)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
	})

	r.Post("/products", app.createProductHandler)
	r.Get("/products", app.listProductsHandler)
	r.Route("/products/{name}", func(r chi.Router) {
		r.Get("/", app.getProductHandler)
		r.Post("/receive", app.receiveStockHandler)
		r.Post("/issue", app.issueStockHandler)
		r.Get("/reorder-check", app.reorderCheckHandler)
		r.Post("/plan", app.planHandler)
	})
	r.Get("/report", app.reportHandler)
	r.Get("/healthz", app.healthHandler)
	r.Get("/debug/metrics", app.metricsHandler)
	r.Handle("/debug/vars", expvar.Handler())
	r.Get("/openapi.yaml", app.openapiHandler)
	r.Get("/docs", app.docsHandler)
	return r
}
