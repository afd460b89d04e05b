// Package telemetry holds storefront business metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for product page engagement.
type BusinessMetrics struct {
	// ProductViews counts detail renders by format (html, json).
	ProductViews *prometheus.CounterVec

	// SelectionActions counts shopper actions by kind (color, size, qty).
	SelectionActions *prometheus.CounterVec

	// UnresolvedSelections counts renders whose color/size pair matched no
	// variant.
	UnresolvedSelections *prometheus.CounterVec

	// InvalidSelections counts requests rejected for an unknown color,
	// size or action.
	InvalidSelections prometheus.Counter

	// ProductListViews counts product list renders.
	ProductListViews prometheus.Counter
}

// NewBusinessMetrics creates the business metrics and registers them on reg.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "vitrine"
	}

	subsystem := "business"
	factory := promauto.With(reg)

	return &BusinessMetrics{
		ProductViews: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "product_views_total",
				Help:      "Total product detail page views",
			},
			[]string{"product_slug", "format"},
		),
		SelectionActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "variant_selection_actions_total",
				Help:      "Total variant selection actions applied",
			},
			[]string{"kind"},
		),
		UnresolvedSelections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "variant_selection_unresolved_total",
				Help:      "Total product renders where the selection matched no variant",
			},
			[]string{"product_slug"},
		),
		InvalidSelections: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "variant_selection_invalid_total",
				Help:      "Total requests rejected for an unknown color, size or action",
			},
		),
		ProductListViews: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "product_list_views_total",
				Help:      "Total product list page views",
			},
		),
	}
}
