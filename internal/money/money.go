// Package money renders campaign amounts for display.
//
// Amounts are grouped with thousands separators the way a browser's
// Number.prototype.toLocaleString does for an English locale: whole
// amounts print without decimals, fractional amounts keep up to two.
package money

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultTag is the locale used when none is given.
var DefaultTag = language.AmericanEnglish

// Formatter formats amounts for one locale.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithSymbol sets the currency symbol prefixed by Currency. Default "$".
func WithSymbol(symbol string) Option {
	return func(f *Formatter) {
		f.symbol = symbol
	}
}

// NewFormatter creates a Formatter for the given locale tag.
func NewFormatter(tag language.Tag, opts ...Option) *Formatter {
	f := &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  "$",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Number formats v with grouping separators, e.g. 3000 -> "3,000",
// 1234.5 -> "1,234.5".
func (f *Formatter) Number(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return f.printer.Sprintf("%d", int64(v))
	}
	s := f.printer.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Currency formats v as Number with the currency symbol in front.
// Negative amounts put the sign before the symbol: "-$200".
func (f *Formatter) Currency(v float64) string {
	if v < 0 {
		return "-" + f.symbol + f.Number(-v)
	}
	return f.symbol + f.Number(v)
}

// Percent formats a ratio as a whole percentage, e.g. 0.6 -> "60%".
func (f *Formatter) Percent(ratio float64) string {
	return f.printer.Sprintf("%d%%", int64(math.Round(ratio*100)))
}

var defaultFormatter = NewFormatter(DefaultTag)

// Number formats v with the default formatter.
func Number(v float64) string {
	return defaultFormatter.Number(v)
}

// Currency formats v with the default formatter.
func Currency(v float64) string {
	return defaultFormatter.Currency(v)
}

// Percent formats ratio with the default formatter.
func Percent(ratio float64) string {
	return defaultFormatter.Percent(ratio)
}
