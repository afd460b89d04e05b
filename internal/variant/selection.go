package variant

import (
	"fmt"

	"github.com/dukerupert/vitrine/internal/domain"
)

// ErrUnknownColor is returned when a color outside the product's color
// axis is selected.
var ErrUnknownColor = &domain.Error{Code: domain.EINVALID, Message: "Color is not available for this product"}

// State is a snapshot of a selection.
type State struct {
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Selection holds the shopper's chosen color, size and quantity for one
// product. It is owned by a single view and is not safe for concurrent use.
//
// Changing the color repairs the size so the pair matches a variant when
// one exists for that color. Changing the size never repairs the color, so
// a size change can land on a pair with no variant; Resolve then reports
// nothing found. Size changes must not repair the color.
type Selection struct {
	axes     Axes
	resolver *Resolver
	state    State
}

// NewSelection builds the axes and index for variants and starts on the
// first color, the first size and a quantity of one.
func NewSelection(variants []domain.Variant) *Selection {
	axes := ComputeAxes(variants)

	s := &Selection{
		axes:     axes,
		resolver: NewResolver(variants),
		state:    State{Quantity: 1},
	}
	if axes.HasColors() {
		s.state.Color = axes.Colors[0]
	}
	if axes.HasSizes() {
		s.state.Size = axes.Sizes[0]
	}

	return s
}

// Axes returns the product's color and size axes.
func (s *Selection) Axes() Axes {
	return s.axes
}

// Resolver returns the variant index the selection checks pairs against.
func (s *Selection) Resolver() *Resolver {
	return s.resolver
}

// SelectColor selects color. If the current size has no variant in the new
// color, the size moves to that of the first variant with the color, or to
// none. A color outside the axis returns ErrUnknownColor and leaves the
// selection unchanged.
func (s *Selection) SelectColor(color string) error {
	if !s.axes.HasColor(color) {
		return &domain.Error{
			Code:    ErrUnknownColor.Code,
			Message: ErrUnknownColor.Message,
			Op:      "selection.color",
			Err:     fmt.Errorf("unknown color %q", color),
		}
	}

	s.state.Color = color
	if !s.resolver.Has(color, s.state.Size) {
		size, _ := s.resolver.FirstSizeFor(color)
		s.state.Size = size
	}

	return nil
}

// SelectSize selects size without checking it against the current color.
func (s *Selection) SelectSize(size string) {
	s.state.Size = size
}

// SetQuantity adds delta to the quantity, never going below one.
// Stock does not cap the quantity.
func (s *Selection) SetQuantity(delta int) {
	s.state.Quantity = max(1, s.state.Quantity+delta)
}

// Query returns the current selection.
func (s *Selection) Query() State {
	return s.state
}

// Resolve returns the variant matching the current selection.
func (s *Selection) Resolve() Resolution {
	return s.resolver.Resolve(s.state.Color, s.state.Size)
}
