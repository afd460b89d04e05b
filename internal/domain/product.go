// Package domain defines the catalog types shared by the storefront, the
// catalog backends and the variant selection engine, along with the
// application error type.
package domain

import (
	"context"
	"time"

	"github.com/dukerupert/vitrine/internal/money"
	"github.com/google/uuid"
)

// =============================================================================
// PRODUCT DOMAIN TYPES
// =============================================================================

// Product is the catalog data shown on a product detail page.
type Product struct {
	ID          uuid.UUID      `json:"id"`
	Slug        string         `json:"slug" validate:"required,max=200"`
	Name        string         `json:"name" validate:"required,max=300"`
	Category    string         `json:"category"`
	BasePrice   money.Price    `json:"base_price"`
	Rating      float64        `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount int            `json:"review_count" validate:"gte=0"`
	Description string         `json:"description"`
	Specs       Specifications `json:"specifications"`
	Reviews     []Review       `json:"reviews_list" validate:"dive"`
}

// Variant is one purchasable color/size combination of a product.
// An empty Color or StandardSize means the variant does not vary along
// that axis.
type Variant struct {
	Color         string      `json:"color,omitempty" validate:"max=64"`
	StandardSize  string      `json:"standard_size,omitempty" validate:"max=64"`
	PriceOverride money.Price `json:"price_override"`
	StockQuantity int         `json:"stock_quantity" validate:"gte=0"`
}

// Review is a shopper review of a product.
type Review struct {
	Author  string    `json:"author"`
	Rating  float64   `json:"rating" validate:"gte=0,lte=5"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}

// =============================================================================
// AGGREGATE TYPES
// =============================================================================

// ProductDetail is a product with its variants in catalog order.
type ProductDetail struct {
	Product  Product   `json:"product"`
	Variants []Variant `json:"variants" validate:"dive"`
}

// ProductSummary is a product in a listing.
type ProductSummary struct {
	Slug      string      `json:"slug"`
	Name      string      `json:"name"`
	Category  string      `json:"category"`
	BasePrice money.Price `json:"base_price"`
	Rating    float64     `json:"rating"`
}

// =============================================================================
// CATALOG INTERFACE
// =============================================================================

// ProductCatalog supplies already-fetched product data to the storefront.
type ProductCatalog interface {
	// GetProductDetail returns the product and its variants.
	// Returns ErrProductNotFound if no product has the slug.
	GetProductDetail(ctx context.Context, slug string) (*ProductDetail, error)

	// ListProducts returns every product in catalog order.
	ListProducts(ctx context.Context) ([]ProductSummary, error)
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

// Product-specific errors.
var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
)
