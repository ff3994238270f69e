// Package format renders amounts and rates as display text.
package format

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"github.com/iwvelando/finance-toolkit/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotANumber replaces the digits of an amount that overflowed or is undefined.
const NotANumber = "n/a"

// Formatter renders currency amounts for one locale and default currency.
type Formatter struct {
	tag     language.Tag
	unit    currency.Unit
	printer *message.Printer
}

// NewFormatter builds a Formatter from a BCP 47 locale (e.g. "en-IN") and an ISO 4217 code.
func NewFormatter(locale, code string) (*Formatter, error) {
	if strings.TrimSpace(locale) == "" {
		locale = constants.DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	if strings.TrimSpace(code) == "" {
		code = constants.DefaultCurrency
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}

	return &Formatter{tag: tag, unit: unit, printer: message.NewPrinter(tag)}, nil
}

// Default returns the formatter for the default locale and currency.
func Default() *Formatter {
	f, err := NewFormatter(constants.DefaultLocale, constants.DefaultCurrency)
	if err != nil {
		panic(fmt.Sprintf("default formatter: %v", err))
	}
	return f
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// CurrencyCode returns the formatter's default ISO currency code.
func (f *Formatter) CurrencyCode() string {
	return f.unit.String()
}

// Currency formats amount in the formatter's default currency, e.g. "NPR 1,122.61".
func (f *Formatter) Currency(amount float64) string {
	return f.render(amount, f.unit)
}

// CurrencyOf formats amount in the given currency. Unknown codes fall back to the
// formatter's default currency.
func (f *Formatter) CurrencyOf(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = f.unit
	}
	return f.render(amount, unit)
}

// render rounds half away from zero to cents before grouping, so -0.004 prints as 0.00.
func (f *Formatter) render(amount float64, unit currency.Unit) string {
	if !mathutil.IsFinite(amount) {
		return unit.String() + " " + NotANumber
	}
	rounded := decimal.NewFromFloat(amount).Round(constants.DisplayDecimals)
	body := f.printer.Sprintf("%.2f", rounded.Abs().InexactFloat64())
	if rounded.IsNegative() {
		return "-" + unit.String() + " " + body
	}
	return unit.String() + " " + body
}

// Plain returns an ungrouped two-decimal string (e.g. "-1234.56") for machine output.
func Plain(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return NotANumber
	}
	return decimal.NewFromFloat(amount).StringFixed(constants.DisplayDecimals)
}

// Rate returns an exchange rate with four decimals (e.g. "133.5000").
func Rate(rate float64) string {
	if !mathutil.IsFinite(rate) {
		return NotANumber
	}
	return decimal.NewFromFloat(rate).StringFixed(constants.RateDecimals)
}

// RateInfo describes a conversion rate as "1 USD = 133.5000 NPR".
func RateInfo(from, to string, rate float64) string {
	return fmt.Sprintf("1 %s = %s %s", from, Rate(rate), to)
}
