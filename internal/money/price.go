// Package money holds catalog price values and their display formatting.
//
// Catalog data carries prices either as plain numbers or as text that may
// embed a currency symbol and separators ("₦ 12,000.00"). Price keeps the
// value as supplied; Formatter turns it into a canonical decimal for display.
package money

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type priceKind uint8

const (
	kindUnset priceKind = iota
	kindNumeric
	kindText
)

// Price is an optional monetary value, numeric or text.
// The zero value is unset.
type Price struct {
	kind   priceKind
	amount decimal.Decimal
	text   string
}

// Numeric returns a price holding a decimal amount.
func Numeric(d decimal.Decimal) Price {
	return Price{kind: kindNumeric, amount: d}
}

// FromFloat returns a numeric price from a float amount.
func FromFloat(f float64) Price {
	return Numeric(decimal.NewFromFloat(f))
}

// FromInt returns a numeric price from a whole amount.
func FromInt(n int64) Price {
	return Numeric(decimal.NewFromInt(n))
}

// Text returns a price holding formatted text. Blank text yields an unset price.
func Text(s string) Price {
	if strings.TrimSpace(s) == "" {
		return Price{}
	}
	return Price{kind: kindText, text: s}
}

// IsSet reports whether the price carries a value.
func (p Price) IsSet() bool {
	return p.kind != kindUnset
}

// IsText reports whether the price was supplied as text.
func (p Price) IsText() bool {
	return p.kind == kindText
}

// Or returns p if it is set, otherwise fallback.
func (p Price) Or(fallback Price) Price {
	if p.IsSet() {
		return p
	}
	return fallback
}

// String returns the value as supplied.
func (p Price) String() string {
	switch p.kind {
	case kindNumeric:
		return p.amount.String()
	case kindText:
		return p.text
	default:
		return ""
	}
}

// MarshalJSON writes numeric prices as JSON numbers, text as strings and
// unset prices as null.
func (p Price) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case kindNumeric:
		return []byte(p.amount.String()), nil
	case kindText:
		return json.Marshal(p.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Price{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("price text: %w", err)
		}
		*p = Text(s)
		return nil
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("price number %s: %w", data, err)
	}
	*p = Numeric(d)
	return nil
}
