package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatValue renders a minor-unit amount as a Brazilian Real display string,
// e.g. 459900 -> "R$ 4.599,00". The output is display-only and never parsed
// back.
func FormatValue(minor int64) string {
	amount := decimal.New(minor, -2)
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString("R$ ")
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
