package storefront

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/dukerupert/vitrine/internal/middleware"
	"github.com/dukerupert/vitrine/internal/productview"
	"github.com/dukerupert/vitrine/internal/variant"
)

// BaseTemplateData returns common data for all templates
func BaseTemplateData(r *http.Request) map[string]interface{} {
	return map[string]interface{}{
		"RequestID": middleware.GetRequestID(r.Context()),
	}
}

// detailURL links to a product page that restores state, shows tab and
// then applies action. An empty action links to the state as is.
func detailURL(slug string, state variant.State, tab productview.Tab, action string) string {
	q := url.Values{}
	if state.Color != "" {
		q.Set("color", state.Color)
	}
	// An empty size next to a color is a repaired selection and is sent as size=
	if state.Size != "" || state.Color != "" {
		q.Set("size", state.Size)
	}
	if state.Quantity > 1 {
		q.Set("qty", strconv.Itoa(state.Quantity))
	}
	if tab != "" && tab != productview.TabDescription {
		q.Set("tab", string(tab))
	}
	if action != "" {
		q.Set("action", action)
	}

	u := "/products/" + url.PathEscape(slug)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}
