package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is applied when the provider omits a currency code.
const DefaultCurrency = "NZD"

// MinorToMajor converts a minor-unit integer amount into a major-unit decimal
// string with exactly two fraction digits (2600 -> "26.00", 1 -> "0.01").
func MinorToMajor(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

// NormalizeCurrency upper-cases a provider currency code, falling back to
// DefaultCurrency when empty.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}

// FormatDisplay renders a major-unit decimal amount for the storefront UI,
// e.g. "NZD 24.00". Grouping follows the en locale ("NZD 1,234.50"). Amounts
// that do not parse render as an em-dash placeholder so a broken catalog
// entry never shows a bogus number.
func FormatDisplay(amount, currencyCode string) string {
	code := NormalizeCurrency(currencyCode)
	if _, err := currency.ParseISO(code); err != nil {
		code = DefaultCurrency
	}

	dec, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return "— " + code
	}

	p := message.NewPrinter(language.English)
	formatted := p.Sprint(number.Decimal(dec.InexactFloat64(),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
	return code + " " + formatted
}
