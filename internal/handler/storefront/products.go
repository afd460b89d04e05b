package storefront

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/dukerupert/vitrine/internal/domain"
	"github.com/dukerupert/vitrine/internal/handler"
	"github.com/dukerupert/vitrine/internal/middleware"
	"github.com/dukerupert/vitrine/internal/money"
	"github.com/dukerupert/vitrine/internal/productview"
	"github.com/dukerupert/vitrine/internal/telemetry"
)

// maxQuantity bounds the qty query parameter.
const maxQuantity = 10000

// ProductHandler serves the product list and product detail pages.
type ProductHandler struct {
	catalog        domain.ProductCatalog
	renderer       *handler.Renderer
	formatter      *money.Formatter
	currencySymbol string
	metrics        *telemetry.BusinessMetrics
}

// ProductHandlerConfig holds the dependencies of ProductHandler.
type ProductHandlerConfig struct {
	Catalog        domain.ProductCatalog
	Renderer       *handler.Renderer
	Formatter      *money.Formatter
	CurrencySymbol string
	Metrics        *telemetry.BusinessMetrics // optional
}

// NewProductHandler creates a new product handler
func NewProductHandler(cfg ProductHandlerConfig) *ProductHandler {
	symbol := cfg.CurrencySymbol
	if symbol == "" {
		symbol = productview.DefaultCurrencySymbol
	}
	return &ProductHandler{
		catalog:        cfg.Catalog,
		renderer:       cfg.Renderer,
		formatter:      cfg.Formatter,
		currencySymbol: symbol,
		metrics:        cfg.Metrics,
	}
}

// productListItem is one row of the product list page.
type productListItem struct {
	Slug     string
	Name     string
	Category string
	Price    money.DisplayAmount
	Rating   float64
	Stars    []productview.Star
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	items := make([]productListItem, len(products))
	for i, p := range products {
		items[i] = productListItem{
			Slug:     p.Slug,
			Name:     p.Name,
			Category: p.Category,
			Price:    h.formatter.Format(p.BasePrice),
			Rating:   p.Rating,
			Stars:    productview.Stars(p.Rating),
		}
	}

	if h.metrics != nil {
		h.metrics.ProductListViews.Inc()
	}

	data := BaseTemplateData(r)
	data["Products"] = items
	data["CurrencySymbol"] = h.currencySymbol

	h.renderer.RenderHTTP(w, r, "storefront/products", data)
}

// optionLink is a color or size button.
type optionLink struct {
	Value    string
	Selected bool
	URL      string
}

// tabLink is a tab header.
type tabLink struct {
	Tab    productview.Tab
	Active bool
	URL    string
}

// Detail handles GET /products/{slug}
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	page, err := h.loadPage(r, "html")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	m := page.view.Model()
	state := m.Selection

	colors := make([]optionLink, len(m.Colors))
	for i, c := range m.Colors {
		colors[i] = optionLink{
			Value:    c.Value,
			Selected: c.Selected,
			URL:      detailURL(m.Slug, state, page.tab, string(productview.ActionColor)+":"+c.Value),
		}
	}
	sizes := make([]optionLink, len(m.Sizes))
	for i, s := range m.Sizes {
		sizes[i] = optionLink{
			Value:    s.Value,
			Selected: s.Selected,
			URL:      detailURL(m.Slug, state, page.tab, string(productview.ActionSize)+":"+s.Value),
		}
	}
	tabs := make([]tabLink, len(productview.AllTabs))
	for i, t := range productview.AllTabs {
		tabs[i] = tabLink{
			Tab:    t,
			Active: t == page.tab,
			URL:    detailURL(m.Slug, state, t, ""),
		}
	}

	data := BaseTemplateData(r)
	data["Product"] = m
	data["Tabs"] = page.view.Tabs(page.tab)
	data["ColorLinks"] = colors
	data["SizeLinks"] = sizes
	data["TabLinks"] = tabs
	data["DecreaseURL"] = detailURL(m.Slug, state, page.tab, "qty:-1")
	data["IncreaseURL"] = detailURL(m.Slug, state, page.tab, "qty:+1")
	data["CanDecrease"] = state.Quantity > 1

	h.renderer.RenderHTTP(w, r, "storefront/product_detail", data)
}

// detailResponse is the JSON body of the product detail API.
type detailResponse struct {
	Product productview.Model     `json:"product"`
	Tabs    productview.TabsModel `json:"tabs"`
}

// DetailJSON handles GET /api/products/{slug}
func (h *ProductHandler) DetailJSON(w http.ResponseWriter, r *http.Request) {
	page, err := h.loadPage(r, "json")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, detailResponse{
		Product: page.view.Model(),
		Tabs:    page.view.Tabs(page.tab),
	})
}

type detailPage struct {
	view *productview.View
	tab  productview.Tab
}

// loadPage fetches the product, restores the selection carried in the query
// string and applies the requested action.
func (h *ProductHandler) loadPage(r *http.Request, format string) (*detailPage, error) {
	ctx := r.Context()
	slug := r.PathValue("slug")
	if slug == "" {
		return nil, domain.ErrProductNotFound
	}

	detail, err := h.catalog.GetProductDetail(ctx, slug)
	if err != nil {
		return nil, err
	}

	q := r.URL.Query()
	view := productview.New(detail, h.formatter, productview.WithCurrencySymbol(h.currencySymbol))

	saved, err := parseState(q)
	if err != nil {
		h.countInvalid()
		return nil, err
	}
	if err := view.Restore(saved); err != nil {
		h.countInvalid()
		return nil, err
	}

	if raw := q.Get("action"); raw != "" {
		action, err := productview.ParseAction(raw)
		if err != nil {
			h.countInvalid()
			return nil, err
		}
		if err := view.Apply(action); err != nil {
			h.countInvalid()
			return nil, err
		}
		if h.metrics != nil {
			h.metrics.SelectionActions.WithLabelValues(string(action.Kind)).Inc()
		}
	}

	res := view.Resolve()
	logger := middleware.GetLogger(ctx)
	logger.Debug("product view built",
		"slug", slug,
		"color", view.Selection().Color,
		"size", view.Selection().Size,
		"quantity", view.Selection().Quantity,
		"resolved", res.Found,
	)

	if h.metrics != nil {
		h.metrics.ProductViews.WithLabelValues(slug, format).Inc()
		if !res.Found {
			h.metrics.UnresolvedSelections.WithLabelValues(slug).Inc()
		}
	}

	return &detailPage{
		view: view,
		tab:  productview.ParseTab(q.Get("tab")),
	}, nil
}

func (h *ProductHandler) countInvalid() {
	if h.metrics != nil {
		h.metrics.InvalidSelections.Inc()
	}
}

// parseState reads color, size and qty from the query. A missing qty is
// left at zero, which keeps the initial quantity. A size parameter that is
// present but empty is kept apart from a missing one.
func parseState(q url.Values) (productview.Saved, error) {
	saved := productview.Saved{
		Color:   q.Get("color"),
		Size:    q.Get("size"),
		SizeSet: q.Has("size"),
	}

	if raw := q.Get("qty"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 1 || qty > maxQuantity {
			return productview.Saved{}, domain.Errorf(domain.EINVALID, "product.parse_state",
				"Quantity must be a whole number between 1 and %d", maxQuantity)
		}
		saved.Quantity = qty
	}

	return saved, nil
}
