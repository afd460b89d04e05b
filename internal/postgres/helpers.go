package postgres

import (
	"math"
	"strings"

	"github.com/dukerupert/vitrine/internal/money"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// priceFromColumns builds a price from a numeric column and a free-text
// column. The numeric column wins when both are present. Text that is a
// bare decimal is kept numeric.
func priceFromColumns(numeric pgtype.Numeric, text pgtype.Text) money.Price {
	if d, ok := decimalFromNumeric(numeric); ok {
		return money.Numeric(d)
	}
	if !text.Valid {
		return money.Price{}
	}
	if d, err := decimal.NewFromString(strings.TrimSpace(text.String)); err == nil {
		return money.Numeric(d)
	}
	return money.Text(text.String)
}

// decimalFromNumeric converts a finite, non-null NUMERIC to a decimal.
func decimalFromNumeric(n pgtype.Numeric) (decimal.Decimal, bool) {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite {
		return decimal.Decimal{}, false
	}
	if n.Int == nil {
		return decimal.Zero, true
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), true
}

// floatFromNumeric converts a rating column. NULL and NaN read as zero.
func floatFromNumeric(n pgtype.Numeric) float64 {
	f, err := n.Float64Value()
	if err != nil || !f.Valid || math.IsNaN(f.Float64) {
		return 0
	}
	return f.Float64
}
