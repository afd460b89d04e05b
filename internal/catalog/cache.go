package catalog

import (
	"context"
	"time"

	"github.com/dukerupert/vitrine/internal/domain"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Defaults for Cached.
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 5 * time.Minute
)

// Cached fronts a catalog with an expiring LRU of product details keyed by
// slug. Lookups that fail, including not found, are not cached. Product
// listings always go to the backing catalog.
type Cached struct {
	next    domain.ProductCatalog
	details *expirable.LRU[string, domain.ProductDetail]
}

// Compile-time check that Cached implements domain.ProductCatalog.
var _ domain.ProductCatalog = (*Cached)(nil)

// NewCached wraps next. Non-positive size or ttl select the defaults.
func NewCached(next domain.ProductCatalog, size int, ttl time.Duration) *Cached {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Cached{
		next:    next,
		details: expirable.NewLRU[string, domain.ProductDetail](size, nil, ttl),
	}
}

// GetProductDetail returns the cached detail for slug, loading it from the
// backing catalog on a miss.
func (c *Cached) GetProductDetail(ctx context.Context, slug string) (*domain.ProductDetail, error) {
	if detail, ok := c.details.Get(slug); ok {
		return cloneDetail(detail), nil
	}

	detail, err := c.next.GetProductDetail(ctx, slug)
	if err != nil {
		return nil, err
	}

	c.details.Add(slug, *cloneDetail(*detail))
	return detail, nil
}

// ListProducts delegates to the backing catalog.
func (c *Cached) ListProducts(ctx context.Context) ([]domain.ProductSummary, error) {
	return c.next.ListProducts(ctx)
}

// Purge drops every cached product.
func (c *Cached) Purge() {
	c.details.Purge()
}

// Len returns the number of cached products.
func (c *Cached) Len() int {
	return c.details.Len()
}

func cloneDetail(d domain.ProductDetail) *domain.ProductDetail {
	d.Variants = append([]domain.Variant(nil), d.Variants...)
	d.Product.Reviews = append([]domain.Review(nil), d.Product.Reviews...)
	d.Product.Specs = append(domain.Specifications(nil), d.Product.Specs...)
	return &d
}
