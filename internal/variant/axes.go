// Package variant derives the color/size axes of a product's variant list,
// holds the shopper's selection, and resolves the selected variant.
package variant

import (
	"slices"

	"github.com/dukerupert/vitrine/internal/domain"
)

// Axes lists the distinct colors and sizes of a variant list in first-seen
// order. Empty values are never included.
type Axes struct {
	Colors []string `json:"colors"`
	Sizes  []string `json:"sizes"`
}

// HasColors reports whether the color selector should be shown.
func (a Axes) HasColors() bool { return len(a.Colors) > 0 }

// HasSizes reports whether the size selector should be shown.
func (a Axes) HasSizes() bool { return len(a.Sizes) > 0 }

// HasColor reports whether color is one of the axis values.
func (a Axes) HasColor(color string) bool { return slices.Contains(a.Colors, color) }

// HasSize reports whether size is one of the axis values.
func (a Axes) HasSize(size string) bool { return slices.Contains(a.Sizes, size) }

// ComputeAxes collects the distinct non-empty colors and sizes of variants.
func ComputeAxes(variants []domain.Variant) Axes {
	axes := Axes{
		Colors: []string{},
		Sizes:  []string{},
	}
	seenColors := make(map[string]struct{})
	seenSizes := make(map[string]struct{})

	for _, v := range variants {
		if v.Color != "" {
			if _, ok := seenColors[v.Color]; !ok {
				seenColors[v.Color] = struct{}{}
				axes.Colors = append(axes.Colors, v.Color)
			}
		}
		if v.StandardSize != "" {
			if _, ok := seenSizes[v.StandardSize]; !ok {
				seenSizes[v.StandardSize] = struct{}{}
				axes.Sizes = append(axes.Sizes, v.StandardSize)
			}
		}
	}

	return axes
}
