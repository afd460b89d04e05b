package money

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is the storefront's display locale.
const DefaultLocale = "en-NG"

// Unavailable is the text rendered when a price cannot be parsed.
const Unavailable = "Price unavailable"

// Amounts are rendered exactly while the integer part fits in an int64.
// Larger amounts go through float64 and keep about 15 significant digits.
const (
	minFractionDigits = 2
	maxFractionDigits = 3
)

var (
	// nonNumeric matches everything a price literal cannot contain.
	nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

	// leadingDecimal matches the longest decimal literal at the start of the
	// stripped text. Anything after it is ignored.
	leadingDecimal = regexp.MustCompile(`^-?(?:[0-9]+\.?[0-9]*|\.[0-9]+)`)
)

// DisplayAmount is a price ready to render.
type DisplayAmount struct {
	// Amount is the parsed value, rounded to the displayed precision.
	// Zero when Valid is false.
	Amount decimal.Decimal

	// Text is the grouped amount ("5,000.00"), or Unavailable.
	Text string

	// Valid is false when the price was unset or held no number.
	Valid bool
}

// Formatter renders prices for one locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer

	// Locale symbols, read back from the printer once.
	digits [10]string
	point  string
	minus  string
}

// NewFormatter creates a formatter for a BCP 47 locale such as "en-NG".
// An empty locale selects DefaultLocale.
func NewFormatter(locale string) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	f := &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
	for i := range f.digits {
		f.digits[i] = f.printer.Sprint(number.Decimal(i))
	}
	half := f.printer.Sprint(number.Decimal(0.5, number.MinFractionDigits(1)))
	f.point = strings.TrimSuffix(strings.TrimPrefix(half, f.digits[0]), f.digits[5])
	f.minus = strings.TrimSuffix(f.printer.Sprint(number.Decimal(-1)), f.digits[1])

	return f, nil
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Parse converts a price into a decimal. Numeric prices are used as is.
// Text prices are stripped of every character other than digits, '.' and
// '-', and the leading decimal literal is parsed. ok is false when the
// price is unset or no number can be read.
func Parse(p Price) (d decimal.Decimal, ok bool) {
	switch p.kind {
	case kindNumeric:
		return p.amount, true
	case kindText:
		return parseText(p.text)
	default:
		return decimal.Zero, false
	}
}

func parseText(s string) (decimal.Decimal, bool) {
	stripped := nonNumeric.ReplaceAllString(s, "")
	literal := strings.TrimSuffix(leadingDecimal.FindString(stripped), ".")
	if literal == "" || literal == "-" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Format renders a price with at least two and at most three fraction
// digits and the locale's grouping separators. Rounding is half away from
// zero. Prices that cannot be parsed render as Unavailable.
func (f *Formatter) Format(p Price) DisplayAmount {
	d, ok := Parse(p)
	if !ok {
		return DisplayAmount{Text: Unavailable}
	}

	rounded := d.Round(maxFractionDigits)

	return DisplayAmount{
		Amount: rounded,
		Text:   f.render(rounded),
		Valid:  true,
	}
}

// render groups the integer part with the locale printer and copies the
// fraction digits from the decimal itself, so no digit passes through a
// float.
func (f *Formatter) render(d decimal.Decimal) string {
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(maxFractionDigits), ".")
	frac = strings.TrimRight(frac, "0")
	for len(frac) < minFractionDigits {
		frac += "0"
	}

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return f.printer.Sprintf("%v", number.Decimal(
			d.InexactFloat64(),
			number.MinFractionDigits(minFractionDigits),
			number.MaxFractionDigits(maxFractionDigits),
		))
	}

	var sb strings.Builder
	if d.IsNegative() {
		sb.WriteString(f.minus)
	}
	sb.WriteString(f.printer.Sprint(number.Decimal(n)))
	sb.WriteString(f.point)
	for _, c := range frac {
		sb.WriteString(f.digits[c-'0'])
	}
	return sb.String()
}
