package variant

import (
	"fmt"

	"github.com/dukerupert/vitrine/internal/domain"
	"github.com/dukerupert/vitrine/internal/money"
)

type pairKey struct {
	color string
	size  string
}

// Resolver looks up the variant matching a (color, size) pair.
// It indexes the variant list once; lookups do not rescan the list.
type Resolver struct {
	variants []domain.Variant

	// byPair maps a pair to the index of its first variant.
	byPair map[pairKey]int

	// firstSize maps a color to the size of the first variant with that color.
	firstSize map[string]string
}

// Resolution is the result of a lookup. Found is false when no variant
// matches; Variant is then the zero value and must not be used.
type Resolution struct {
	Variant domain.Variant
	Index   int
	Found   bool
}

// NewResolver indexes variants. The slice is copied; later changes to the
// caller's slice are not observed.
func NewResolver(variants []domain.Variant) *Resolver {
	r := &Resolver{
		variants:  append([]domain.Variant(nil), variants...),
		byPair:    make(map[pairKey]int, len(variants)),
		firstSize: make(map[string]string),
	}

	for i, v := range r.variants {
		key := pairKey{color: v.Color, size: v.StandardSize}
		if _, ok := r.byPair[key]; !ok {
			r.byPair[key] = i
		}
		if _, ok := r.firstSize[v.Color]; !ok {
			r.firstSize[v.Color] = v.StandardSize
		}
	}

	return r
}

// Len returns the number of indexed variants.
func (r *Resolver) Len() int {
	return len(r.variants)
}

// Resolve returns the first variant whose color and size both equal the
// given values. There is no partial match.
func (r *Resolver) Resolve(color, size string) Resolution {
	i, ok := r.byPair[pairKey{color: color, size: size}]
	if !ok {
		return Resolution{Index: -1}
	}
	return Resolution{Variant: r.variants[i], Index: i, Found: true}
}

// Has reports whether some variant matches the pair.
func (r *Resolver) Has(color, size string) bool {
	_, ok := r.byPair[pairKey{color: color, size: size}]
	return ok
}

// FirstSizeFor returns the size of the first variant with the given color.
// ok is false when no variant has that color.
func (r *Resolver) FirstSizeFor(color string) (size string, ok bool) {
	size, ok = r.firstSize[color]
	return size, ok
}

// DisplayPrice returns the variant's price override when one is set,
// otherwise base.
func DisplayPrice(res Resolution, base money.Price) money.Price {
	if !res.Found {
		return base
	}
	return res.Variant.PriceOverride.Or(base)
}

// Stock messages.
const (
	OutOfStock = "Out of stock"
)

// StockMessage describes the resolved variant's stock. ok is false when
// nothing was resolved, in which case stock information is not shown.
func StockMessage(res Resolution) (msg string, ok bool) {
	if !res.Found {
		return "", false
	}
	if res.Variant.StockQuantity > 0 {
		return fmt.Sprintf("%d available in stock", res.Variant.StockQuantity), true
	}
	return OutOfStock, true
}
