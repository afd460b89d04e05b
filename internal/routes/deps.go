package routes

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/dukerupert/vitrine/internal/handler/storefront"
)

// StorefrontDeps contains dependencies for storefront routes
type StorefrontDeps struct {
	// Products: list, detail page and detail JSON
	ProductHandler *storefront.ProductHandler

	// Static assets served under /static/
	Static fs.FS

	// Deadline for catalog-backed routes; zero selects the default
	CatalogTimeout time.Duration
}

// SystemDeps contains dependencies for operational routes
type SystemDeps struct {
	HealthHandler  http.HandlerFunc
	MetricsHandler http.Handler
}
