// Package postgres implements the product catalog on PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dukerupert/vitrine/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the subset of pgxpool.Pool used by Catalog.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Catalog implements domain.ProductCatalog using PostgreSQL.
type Catalog struct {
	db Querier
}

// Compile-time check that Catalog implements domain.ProductCatalog.
var _ domain.ProductCatalog = (*Catalog)(nil)

// NewCatalog creates a PostgreSQL-backed catalog.
func NewCatalog(db Querier) *Catalog {
	return &Catalog{db: db}
}

const getProductBySlug = `
SELECT id, slug, name, category, base_price, base_price_text,
       rating, review_count, description, specifications::text
FROM products
WHERE slug = $1`

const getProductVariants = `
SELECT color, standard_size, price_override, stock_quantity
FROM product_variants
WHERE product_id = $1
ORDER BY position`

const getProductReviews = `
SELECT author, rating, comment, created_at
FROM product_reviews
WHERE product_id = $1
ORDER BY position`

const listProducts = `
SELECT slug, name, category, base_price, base_price_text, rating
FROM products
ORDER BY sort_order, created_at`

// =============================================================================
// STOREFRONT OPERATIONS
// =============================================================================

// GetProductDetail loads a product with its variants and reviews in
// catalog order.
func (c *Catalog) GetProductDetail(ctx context.Context, slug string) (*domain.ProductDetail, error) {
	var (
		p         domain.Product
		id        pgtype.UUID
		basePrice pgtype.Numeric
		baseText  pgtype.Text
		rating    pgtype.Numeric
		specs     string
	)

	err := c.db.QueryRow(ctx, getProductBySlug, slug).Scan(
		&id, &p.Slug, &p.Name, &p.Category, &basePrice, &baseText,
		&rating, &p.ReviewCount, &p.Description, &specs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "product.get_detail", "failed to get product by slug")
	}

	if id.Valid {
		p.ID = uuid.UUID(id.Bytes)
	}
	p.BasePrice = priceFromColumns(basePrice, baseText)
	p.Rating = floatFromNumeric(rating)

	if err := json.Unmarshal([]byte(specs), &p.Specs); err != nil {
		return nil, domain.Internal(err, "product.get_detail", "failed to decode product specifications")
	}

	variants, err := c.variants(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Reviews, err = c.reviews(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.ProductDetail{
		Product:  p,
		Variants: variants,
	}, nil
}

// ListProducts returns every product in display order.
func (c *Catalog) ListProducts(ctx context.Context) ([]domain.ProductSummary, error) {
	rows, err := c.db.Query(ctx, listProducts)
	if err != nil {
		return nil, domain.Internal(err, "product.list", "failed to list products")
	}
	defer rows.Close()

	var items []domain.ProductSummary
	for rows.Next() {
		var (
			item      domain.ProductSummary
			basePrice pgtype.Numeric
			baseText  pgtype.Text
			rating    pgtype.Numeric
		)
		if err := rows.Scan(&item.Slug, &item.Name, &item.Category, &basePrice, &baseText, &rating); err != nil {
			return nil, domain.Internal(err, "product.list", "failed to scan product")
		}
		item.BasePrice = priceFromColumns(basePrice, baseText)
		item.Rating = floatFromNumeric(rating)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "product.list", "failed to list products")
	}

	return items, nil
}

// Ping verifies the database connection.
func (c *Catalog) Ping(ctx context.Context) error {
	if _, err := c.db.Exec(ctx, "SELECT 1"); err != nil {
		return domain.Internal(err, "catalog.ping", "database unavailable")
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (c *Catalog) variants(ctx context.Context, productID pgtype.UUID) ([]domain.Variant, error) {
	rows, err := c.db.Query(ctx, getProductVariants, productID)
	if err != nil {
		return nil, domain.Internal(err, "product.get_detail", "failed to get product variants")
	}
	defer rows.Close()

	variants := []domain.Variant{}
	for rows.Next() {
		var (
			v        domain.Variant
			override pgtype.Text
		)
		if err := rows.Scan(&v.Color, &v.StandardSize, &override, &v.StockQuantity); err != nil {
			return nil, domain.Internal(err, "product.get_detail", "failed to scan product variant")
		}
		v.PriceOverride = priceFromColumns(pgtype.Numeric{}, override)
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "product.get_detail", "failed to get product variants")
	}

	return variants, nil
}

func (c *Catalog) reviews(ctx context.Context, productID pgtype.UUID) ([]domain.Review, error) {
	rows, err := c.db.Query(ctx, getProductReviews, productID)
	if err != nil {
		return nil, domain.Internal(err, "product.get_detail", "failed to get product reviews")
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var (
			r       domain.Review
			rating  pgtype.Numeric
			created pgtype.Timestamptz
		)
		if err := rows.Scan(&r.Author, &rating, &r.Comment, &created); err != nil {
			return nil, domain.Internal(err, "product.get_detail", "failed to scan product review")
		}
		r.Rating = floatFromNumeric(rating)
		if created.Valid {
			r.Date = created.Time
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "product.get_detail", "failed to get product reviews")
	}

	return reviews, nil
}
