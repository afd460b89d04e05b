// Package productview builds the product detail page state: it owns one
// variant selection for one product and exposes what the page renders.
package productview

import (
	"github.com/dukerupert/vitrine/internal/domain"
	"github.com/dukerupert/vitrine/internal/money"
	"github.com/dukerupert/vitrine/internal/variant"
)

// DefaultCurrencySymbol prefixes rendered prices.
const DefaultCurrencySymbol = "₦"

// View is the state of one product detail page. A View must not be shared
// between pages or goroutines; build a new one per product.
type View struct {
	product   domain.Product
	selection *variant.Selection
	formatter *money.Formatter
	symbol    string
}

// Option configures a View.
type Option func(*View)

// WithCurrencySymbol sets the symbol shown before prices.
func WithCurrencySymbol(symbol string) Option {
	return func(v *View) {
		v.symbol = symbol
	}
}

// New builds the view for detail. The selection starts on the first color
// and size with a quantity of one.
func New(detail *domain.ProductDetail, formatter *money.Formatter, opts ...Option) *View {
	v := &View{
		product:   detail.Product,
		selection: variant.NewSelection(detail.Variants),
		formatter: formatter,
		symbol:    DefaultCurrencySymbol,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Product returns the product the view was built for.
func (v *View) Product() domain.Product {
	return v.product
}

// SelectColor selects a color from the color axis.
func (v *View) SelectColor(color string) error {
	return v.selection.SelectColor(color)
}

// SelectSize selects a size. Callers taking sizes from outside input should
// check Axes().HasSize first.
func (v *View) SelectSize(size string) {
	v.selection.SelectSize(size)
}

// SetQuantity changes the quantity by delta, never below one.
func (v *View) SetQuantity(delta int) {
	v.selection.SetQuantity(delta)
}

// Selection returns the current color, size and quantity.
func (v *View) Selection() variant.State {
	return v.selection.Query()
}

// Axes returns the product's color and size axes.
func (v *View) Axes() variant.Axes {
	return v.selection.Axes()
}

// Resolve returns the variant matching the current selection.
func (v *View) Resolve() variant.Resolution {
	return v.selection.Resolve()
}

// Price returns the formatted display price for the current selection.
func (v *View) Price() money.DisplayAmount {
	return v.formatter.Format(variant.DisplayPrice(v.Resolve(), v.product.BasePrice))
}

// AxisOption is one selectable value of an axis.
type AxisOption struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// Model is everything the product info panel renders.
type Model struct {
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Stars       []Star  `json:"stars"`

	CurrencySymbol string `json:"currency_symbol"`
	PriceText      string `json:"price"`
	PriceValid     bool   `json:"price_valid"`

	ShowColors bool         `json:"show_colors"`
	Colors     []AxisOption `json:"colors"`
	ShowSizes  bool         `json:"show_sizes"`
	Sizes      []AxisOption `json:"sizes"`

	Selection variant.State `json:"selection"`

	ShowStock    bool   `json:"show_stock"`
	StockMessage string `json:"stock_message,omitempty"`
	InStock      bool   `json:"in_stock"`
}

// Model derives the render model from the current selection.
func (v *View) Model() Model {
	axes := v.Axes()
	state := v.Selection()
	res := v.Resolve()
	price := v.Price()
	stock, showStock := variant.StockMessage(res)

	return Model{
		Slug:           v.product.Slug,
		Name:           v.product.Name,
		Category:       v.product.Category,
		Rating:         v.product.Rating,
		ReviewCount:    v.product.ReviewCount,
		Stars:          Stars(v.product.Rating),
		CurrencySymbol: v.symbol,
		PriceText:      price.Text,
		PriceValid:     price.Valid,
		ShowColors:     axes.HasColors(),
		Colors:         axisOptions(axes.Colors, state.Color),
		ShowSizes:      axes.HasSizes(),
		Sizes:          axisOptions(axes.Sizes, state.Size),
		Selection:      state,
		ShowStock:      showStock,
		StockMessage:   stock,
		InStock:        res.Found && res.Variant.StockQuantity > 0,
	}
}

func axisOptions(values []string, selected string) []AxisOption {
	opts := make([]AxisOption, len(values))
	for i, value := range values {
		opts[i] = AxisOption{Value: value, Selected: value == selected}
	}
	return opts
}
