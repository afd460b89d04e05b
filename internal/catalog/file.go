// Package catalog provides product catalog backends that do not need a
// database, and a cache that fronts any backend.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dukerupert/vitrine/internal/domain"
	"github.com/go-playground/validator/v10"
)

// FileCatalog serves products loaded once from a JSON document.
// It is safe for concurrent use; the data is never modified after load.
type FileCatalog struct {
	order  []string
	bySlug map[string]*domain.ProductDetail
}

// Compile-time check that FileCatalog implements domain.ProductCatalog.
var _ domain.ProductCatalog = (*FileCatalog)(nil)

// fileDocument is the on-disk layout: a list of products, each with its
// variants.
type fileDocument struct {
	Products []fileProduct `json:"products" validate:"dive"`
}

type fileProduct struct {
	domain.Product
	Variants []domain.Variant `json:"variants" validate:"dive"`
}

// OpenFile loads a catalog from a JSON file.
func OpenFile(path string) (*FileCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog file %s: %w", path, err)
	}
	return c, nil
}

// Load reads and validates a catalog document. Every product needs a slug
// and a name, slugs must be unique, ratings lie within 0..5 and stock is
// never negative.
func Load(r io.Reader) (*FileCatalog, error) {
	var doc fileDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := validate.Struct(doc); err != nil {
		return nil, validationError(err)
	}

	c := &FileCatalog{
		order:  make([]string, 0, len(doc.Products)),
		bySlug: make(map[string]*domain.ProductDetail, len(doc.Products)),
	}
	for _, p := range doc.Products {
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, domain.Errorf(domain.EINVALID, "catalog.load", "duplicate product slug %q", p.Slug)
		}
		c.order = append(c.order, p.Slug)
		c.bySlug[p.Slug] = &domain.ProductDetail{
			Product:  p.Product,
			Variants: p.Variants,
		}
	}

	return c, nil
}

// GetProductDetail returns the product with the given slug.
func (c *FileCatalog) GetProductDetail(ctx context.Context, slug string) (*domain.ProductDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	detail, ok := c.bySlug[slug]
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	// Hand out a copy so callers cannot alter the loaded catalog.
	out := *detail
	out.Variants = append([]domain.Variant(nil), detail.Variants...)
	return &out, nil
}

// ListProducts returns all products in file order.
func (c *FileCatalog) ListProducts(ctx context.Context) ([]domain.ProductSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]domain.ProductSummary, 0, len(c.order))
	for _, slug := range c.order {
		p := c.bySlug[slug].Product
		items = append(items, domain.ProductSummary{
			Slug:      p.Slug,
			Name:      p.Name,
			Category:  p.Category,
			BasePrice: p.BasePrice,
			Rating:    p.Rating,
		})
	}
	return items, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validationError turns validator output into a domain error naming the
// first failing field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &domain.Error{
			Code:    domain.EINVALID,
			Op:      "catalog.validate",
			Message: fmt.Sprintf("%s failed %q validation", fe.Namespace(), fe.Tag()),
			Err:     err,
		}
	}
	return domain.WrapError(err, domain.EINVALID, "catalog.validate", "invalid catalog")
}
