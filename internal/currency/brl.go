// Package currency formats monetary amounts with Brazilian Real locale
// conventions, matching how the dashboard displays revenue and monetary
// scalars.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders v as Brazilian Real, e.g. 1234.5 -> "R$ 1.234,50".
func FormatBRL(v float64) string {
	return printer.Sprintf("R$ %v", number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
