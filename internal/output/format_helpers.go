package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

var hundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as dollars with thousands grouping, e.g. -$1,234.50.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	abs := rounded.Abs()
	whole := abs.IntPart()
	cents := abs.Sub(decimal.NewFromInt(whole)).Mul(hundred).IntPart()
	return sign(rounded) + "$" + printer.Sprintf("%d", whole) + fmt.Sprintf(".%02d", cents)
}

// FormatCurrencyWhole formats a decimal as whole dollars with thousands grouping.
func FormatCurrencyWhole(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	return sign(rounded) + "$" + printer.Sprintf("%d", rounded.Abs().IntPart())
}

// FormatPercentage formats a decimal that is already a percentage.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fraction (0.22) as a percentage (22%).
func FormatRate(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).Round(2).String() + "%"
}

// FormatDelta formats a signed currency change with an explicit plus sign.
func FormatDelta(amount decimal.Decimal) string {
	if amount.Round(0).IsPositive() {
		return "+" + FormatCurrencyWhole(amount)
	}
	return FormatCurrencyWhole(amount)
}

func sign(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-"
	}
	return ""
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
