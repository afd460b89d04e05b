package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukerupert/vitrine/internal/domain"
	"github.com/dukerupert/vitrine/internal/handler"
	"github.com/dukerupert/vitrine/internal/money"
	"github.com/dukerupert/vitrine/internal/productview"
	"github.com/dukerupert/vitrine/internal/telemetry"
	"github.com/dukerupert/vitrine/internal/variant"
	"github.com/dukerupert/vitrine/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCatalog implements domain.ProductCatalog for testing
type mockCatalog struct {
	getProductDetailFunc func(ctx context.Context, slug string) (*domain.ProductDetail, error)
	listProductsFunc     func(ctx context.Context) ([]domain.ProductSummary, error)
}

func (m *mockCatalog) GetProductDetail(ctx context.Context, slug string) (*domain.ProductDetail, error) {
	if m.getProductDetailFunc != nil {
		return m.getProductDetailFunc(ctx, slug)
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockCatalog) ListProducts(ctx context.Context) ([]domain.ProductSummary, error) {
	if m.listProductsFunc != nil {
		return m.listProductsFunc(ctx)
	}
	return nil, nil
}

func shirt() *domain.ProductDetail {
	return &domain.ProductDetail{
		Product: domain.Product{
			Slug:        "linen-shirt",
			Name:        "Linen Shirt",
			Category:    "menswear",
			BasePrice:   money.FromInt(4000),
			Rating:      4.5,
			ReviewCount: 12,
			Description: "Breathable linen.",
			Specs:       domain.Specifications{{Key: "fabric_weight", Values: []string{"light"}}},
		},
		Variants: []domain.Variant{
			{Color: "red", StandardSize: "M", StockQuantity: 3},
			{Color: "red", StandardSize: "L", StockQuantity: 0},
			{Color: "blue", StandardSize: "S", StockQuantity: 8, PriceOverride: money.Text("₦ 5,000.00")},
		},
	}
}

func shirtCatalog() *mockCatalog {
	return &mockCatalog{
		getProductDetailFunc: func(ctx context.Context, slug string) (*domain.ProductDetail, error) {
			if slug != "linen-shirt" {
				return nil, domain.ErrProductNotFound
			}
			return shirt(), nil
		},
	}
}

func newTestHandler(t *testing.T, catalog domain.ProductCatalog) (*ProductHandler, *telemetry.BusinessMetrics) {
	t.Helper()

	renderer, err := handler.NewRenderer(web.Templates())
	require.NoError(t, err)

	formatter, err := money.NewFormatter(money.DefaultLocale)
	require.NoError(t, err)

	metrics := telemetry.NewBusinessMetrics("test", prometheus.NewRegistry())

	return NewProductHandler(ProductHandlerConfig{
		Catalog:   catalog,
		Renderer:  renderer,
		Formatter: formatter,
		Metrics:   metrics,
	}), metrics
}

func serve(h http.HandlerFunc, pattern, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+pattern, h)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) detailResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp detailResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestProductHandler_List(t *testing.T) {
	h, metrics := newTestHandler(t, &mockCatalog{
		listProductsFunc: func(ctx context.Context) ([]domain.ProductSummary, error) {
			return []domain.ProductSummary{
				{Slug: "linen-shirt", Name: "Linen Shirt", BasePrice: money.FromInt(4000), Rating: 4.5},
				{Slug: "gift-card", Name: "Gift Card", BasePrice: money.Text("free")},
			}, nil
		},
	})

	rec := serve(h.List, "/products", "/products")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/products/linen-shirt"`)
	assert.Contains(t, body, "Linen Shirt")
	assert.Contains(t, body, "₦4,000.00")
	assert.Contains(t, body, money.Unavailable)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProductListViews))
}

func TestProductHandler_ListError(t *testing.T) {
	h, _ := newTestHandler(t, &mockCatalog{
		listProductsFunc: func(ctx context.Context) ([]domain.ProductSummary, error) {
			return nil, domain.Internal(errors.New("connection refused"), "product.list", "failed to list products")
		},
	})

	rec := serve(h.List, "/products", "/products")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestProductHandler_DetailInitialState(t *testing.T) {
	h, metrics := newTestHandler(t, shirtCatalog())

	rec := serve(h.Detail, "/products/{slug}", "/products/linen-shirt")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Linen Shirt")
	assert.Contains(t, body, "₦4,000.00")
	assert.Contains(t, body, "3 available in stock")
	assert.Contains(t, body, "Breathable linen.")
	assert.Contains(t, body, `href="/products/linen-shirt?action=color%3Ablue&amp;color=red&amp;size=M"`)
	assert.Contains(t, body, `href="/products/linen-shirt?action=qty%3A%2B1&amp;color=red&amp;size=M"`)
	assert.Contains(t, body, `aria-label="Increase quantity to 2"`)
	assert.Contains(t, body, fmt.Sprintf("&copy; %d Vitrine", time.Now().Year()))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProductViews.WithLabelValues("linen-shirt", "html")))
}

func TestProductHandler_DetailJSON(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantState variant.State
		wantPrice string
		wantStock string
		showStock bool
	}{
		{
			name:      "initial selection",
			query:     "",
			wantState: variant.State{Color: "red", Size: "M", Quantity: 1},
			wantPrice: "4,000.00",
			wantStock: "3 available in stock",
			showStock: true,
		},
		{
			name:      "size out of stock",
			query:     "?color=red&size=M&action=size:L",
			wantState: variant.State{Color: "red", Size: "L", Quantity: 1},
			wantPrice: "4,000.00",
			wantStock: variant.OutOfStock,
			showStock: true,
		},
		{
			name:      "color change repairs size and uses override",
			query:     "?color=red&size=L&action=color:blue",
			wantState: variant.State{Color: "blue", Size: "S", Quantity: 1},
			wantPrice: "5,000.00",
			wantStock: "8 available in stock",
			showStock: true,
		},
		{
			name:      "size change does not repair color",
			query:     "?color=blue&size=S&action=size:M",
			wantState: variant.State{Color: "blue", Size: "M", Quantity: 1},
			wantPrice: "4,000.00",
			showStock: false,
		},
		{
			name:      "unresolved state survives a round trip",
			query:     "?color=blue&size=M&qty=2",
			wantState: variant.State{Color: "blue", Size: "M", Quantity: 2},
			wantPrice: "4,000.00",
			showStock: false,
		},
		{
			name:      "quantity increment",
			query:     "?color=red&size=M&qty=2&action=qty:%2B1",
			wantState: variant.State{Color: "red", Size: "M", Quantity: 3},
			wantPrice: "4,000.00",
			wantStock: "3 available in stock",
			showStock: true,
		},
		{
			name:      "quantity floor",
			query:     "?action=qty:-1",
			wantState: variant.State{Color: "red", Size: "M", Quantity: 1},
			wantPrice: "4,000.00",
			wantStock: "3 available in stock",
			showStock: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t, shirtCatalog())

			resp := decodeDetail(t, serve(h.DetailJSON, "/api/products/{slug}", "/api/products/linen-shirt"+tt.query))

			assert.Equal(t, tt.wantState, resp.Product.Selection)
			assert.Equal(t, tt.wantPrice, resp.Product.PriceText)
			assert.Equal(t, tt.showStock, resp.Product.ShowStock)
			assert.Equal(t, tt.wantStock, resp.Product.StockMessage)
		})
	}
}

func TestProductHandler_DetailJSONTabs(t *testing.T) {
	h, _ := newTestHandler(t, shirtCatalog())

	resp := decodeDetail(t, serve(h.DetailJSON, "/api/products/{slug}", "/api/products/linen-shirt?tab=specifications"))

	assert.Equal(t, productview.TabSpecifications, resp.Tabs.Active)
	assert.Equal(t, []productview.SpecRow{{Label: "fabric weight", Value: "light"}}, resp.Tabs.Specifications)
}

func TestProductHandler_DetailUnresolvedMetric(t *testing.T) {
	h, metrics := newTestHandler(t, shirtCatalog())

	serve(h.DetailJSON, "/api/products/{slug}", "/api/products/linen-shirt?color=blue&size=M")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.UnresolvedSelections.WithLabelValues("linen-shirt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProductViews.WithLabelValues("linen-shirt", "json")))
}

func TestProductHandler_DetailErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{name: "unknown product", target: "/api/products/missing", wantStatus: http.StatusNotFound, wantCode: domain.ENOTFOUND},
		{name: "unknown color", target: "/api/products/linen-shirt?color=green", wantStatus: http.StatusBadRequest, wantCode: domain.EINVALID},
		{name: "unknown size", target: "/api/products/linen-shirt?size=XXL", wantStatus: http.StatusBadRequest, wantCode: domain.EINVALID},
		{name: "unknown color action", target: "/api/products/linen-shirt?action=color:green", wantStatus: http.StatusBadRequest, wantCode: domain.EINVALID},
		{name: "unknown size action", target: "/api/products/linen-shirt?action=size:XXL", wantStatus: http.StatusBadRequest, wantCode: domain.EINVALID},
		{name: "malformed action", target: "/api/products/linen-shirt?action=wishlist", wantStatus: http.StatusBadRequest, wantCode: domain.EINVALID},
		{name: "zero quantity", target: "/api/products/linen-shirt?qty=0", wantStatus: http.StatusBadRequest, wantCode: domain.EINVALID},
		{name: "non-numeric quantity", target: "/api/products/linen-shirt?qty=lots", wantStatus: http.StatusBadRequest, wantCode: domain.EINVALID},
		{name: "oversized quantity", target: "/api/products/linen-shirt?qty=10001", wantStatus: http.StatusBadRequest, wantCode: domain.EINVALID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, metrics := newTestHandler(t, shirtCatalog())

			rec := serve(h.DetailJSON, "/api/products/{slug}", tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Error.Code)

			if tt.wantStatus == http.StatusBadRequest {
				assert.Equal(t, 1.0, testutil.ToFloat64(metrics.InvalidSelections))
			}
		})
	}
}

func TestProductHandler_DetailReviewsTab(t *testing.T) {
	h, _ := newTestHandler(t, shirtCatalog())

	rec := serve(h.Detail, "/products/{slug}", "/products/linen-shirt?tab=Specifications")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fabric weight")
	assert.Contains(t, rec.Body.String(), `class="tab active">Specifications`)
}

func TestProductHandler_DetailNoVariants(t *testing.T) {
	h, _ := newTestHandler(t, &mockCatalog{
		getProductDetailFunc: func(ctx context.Context, slug string) (*domain.ProductDetail, error) {
			return &domain.ProductDetail{
				Product: domain.Product{Slug: slug, Name: "Gift Card", BasePrice: money.FromInt(10000)},
			}, nil
		},
	})

	resp := decodeDetail(t, serve(h.DetailJSON, "/api/products/{slug}", "/api/products/gift-card"))

	assert.False(t, resp.Product.ShowColors)
	assert.False(t, resp.Product.ShowSizes)
	assert.False(t, resp.Product.ShowStock)
	assert.Equal(t, "10,000.00", resp.Product.PriceText)
	assert.Equal(t, productview.NoSpecifications, resp.Tabs.EmptySpecsText)
}

func TestParseState(t *testing.T) {
	saved, err := parseState(map[string][]string{"color": {"red"}, "size": {"M"}, "qty": {"4"}})
	require.NoError(t, err)
	assert.Equal(t, productview.Saved{Color: "red", Size: "M", SizeSet: true, Quantity: 4}, saved)

	saved, err = parseState(map[string][]string{"color": {"red"}, "size": {""}})
	require.NoError(t, err)
	assert.Equal(t, productview.Saved{Color: "red", SizeSet: true}, saved)

	saved, err = parseState(nil)
	require.NoError(t, err)
	assert.Equal(t, productview.Saved{}, saved)
}

func TestDetailURL(t *testing.T) {
	state := variant.State{Color: "red", Size: "EU 42", Quantity: 2}

	assert.Equal(t, "/products/linen-shirt?color=red&qty=2&size=EU+42",
		detailURL("linen-shirt", state, productview.TabDescription, ""))
	assert.Equal(t, "/products/linen-shirt?action=qty%3A-1&color=red&qty=2&size=EU+42&tab=Reviews",
		detailURL("linen-shirt", state, productview.TabReviews, "qty:-1"))
	assert.Equal(t, "/products/kaftan?color=red&size=",
		detailURL("kaftan", variant.State{Color: "red", Quantity: 1}, "", ""))
	assert.Equal(t, "/products/gift-card",
		detailURL("gift-card", variant.State{Quantity: 1}, "", ""))
}

func kaftanCatalog() *mockCatalog {
	return &mockCatalog{
		getProductDetailFunc: func(ctx context.Context, slug string) (*domain.ProductDetail, error) {
			return &domain.ProductDetail{
				Product: domain.Product{
					Slug:      "kaftan",
					Name:      "Kaftan",
					BasePrice: money.FromInt(3000),
				},
				Variants: []domain.Variant{
					{Color: "blue", StandardSize: "M", StockQuantity: 1},
					{Color: "red", StandardSize: "", StockQuantity: 9},
					{Color: "red", StandardSize: "M", StockQuantity: 0},
					{Color: "green", StandardSize: "L", StockQuantity: 2},
				},
			}, nil
		},
	}
}

func TestProductHandler_DetailKeepsRepairedEmptySize(t *testing.T) {
	h, _ := newTestHandler(t, kaftanCatalog())

	// green to red repairs the size to none
	resp := decodeDetail(t, serve(h.DetailJSON, "/api/products/{slug}", "/api/products/kaftan?color=green&size=L&action=color:red"))
	require.Equal(t, variant.State{Color: "red", Size: "", Quantity: 1}, resp.Product.Selection)
	require.Equal(t, "9 available in stock", resp.Product.StockMessage)

	// Follow the quantity link the page would render for that state
	next := detailURL("kaftan", resp.Product.Selection, productview.TabDescription, "qty:+1")
	resp = decodeDetail(t, serve(h.DetailJSON, "/api/products/{slug}", "/api"+next))

	assert.Equal(t, variant.State{Color: "red", Size: "", Quantity: 2}, resp.Product.Selection)
	assert.Equal(t, "9 available in stock", resp.Product.StockMessage)
	assert.True(t, resp.Product.ShowStock)
}

func TestProductHandler_DetailRendersEmptySizeInLinks(t *testing.T) {
	h, _ := newTestHandler(t, kaftanCatalog())

	rec := serve(h.Detail, "/products/{slug}", "/products/kaftan?color=red&size=&qty=3")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `href="/products/kaftan?action=qty%3A%2B1&amp;color=red&amp;qty=3&amp;size="`)
	assert.Contains(t, body, `aria-label="Decrease quantity to 2"`)
	assert.Contains(t, body, "9 available in stock")
}
