package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol is the rupee sign prefixed to every displayed amount.
const Symbol = "₹"

var indian = language.MustParse("en-IN")

// Format renders an amount with Indian digit grouping and up to two decimals, dropping trailing zeros.
//
//	123456     -> ₹1,23,456
//	1234.5     -> ₹1,234.5
func Format(amount decimal.Decimal) string {
	return Symbol + Group(amount.Round(2))
}

// FormatWhole renders an amount rounded to whole rupees.
func FormatWhole(amount decimal.Decimal) string {
	return Symbol + Group(amount.Round(0))
}

// FormatInt is a convenience wrapper for integral amounts.
func FormatInt(amount int64) string {
	return FormatWhole(decimal.NewFromInt(amount))
}

// Group applies the lakh/crore grouping (3 then 2) to the integer part of amount.
func Group(amount decimal.Decimal) string {
	abs := amount.Abs()
	whole := abs.Truncate(0)

	// Printers are not safe for concurrent use.
	out := message.NewPrinter(indian).Sprintf("%d", whole.IntPart())
	if frac := strings.TrimRight(strings.TrimPrefix(abs.Sub(whole).String(), "0."), "0"); frac != "" {
		out += "." + frac
	}
	if amount.Sign() < 0 {
		out = "-" + out
	}
	return out
}
