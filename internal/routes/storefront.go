package routes

import (
	"net/http"

	"github.com/dukerupert/vitrine/internal/handler"
	"github.com/dukerupert/vitrine/internal/middleware"
	"github.com/dukerupert/vitrine/internal/router"
)

// RegisterStorefrontRoutes registers all customer-facing storefront routes.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	r.Get("/{$}", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/products", http.StatusFound)
	})

	// Routes that read the catalog get a request deadline
	products := r.Group(middleware.Timeout(deps.CatalogTimeout))

	// Product browsing
	products.Get("/products", deps.ProductHandler.List)
	products.Get("/products/{slug}", deps.ProductHandler.Detail)

	// JSON render model for the same page state
	products.Get("/api/products/{slug}", deps.ProductHandler.DetailJSON)

	if deps.Static != nil {
		r.Static("/static/", deps.Static)
	}

	r.NotFound(handler.NotFoundResponse)
}

// RegisterSystemRoutes registers health and metrics endpoints.
func RegisterSystemRoutes(r *router.Router, deps SystemDeps) {
	r.Get("/health", deps.HealthHandler)
	if deps.MetricsHandler != nil {
		r.Handle(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}
