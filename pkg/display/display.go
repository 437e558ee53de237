// Package display holds the pure value-to-label mappings the dashboards render:
// currency, length of stay and badge variants.
package display

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Variant is a badge/alert color name understood by the UI.
type Variant string

const (
	Primary   Variant = "primary"
	Secondary Variant = "secondary"
	Success   Variant = "success"
	Danger    Variant = "danger"
	Warning   Variant = "warning"
	Info      Variant = "info"
	Dark      Variant = "dark"
)

const DefaultCurrencySymbol = "$"

// Risk thresholds for RiskBadgeColor.
const (
	HighRiskScore     = 7.0
	ModerateRiskScore = 4.0
)

func FormatCurrency(amount decimal.Decimal) string {
	return FormatCurrencyWith(DefaultCurrencySymbol, amount)
}

// FormatCurrencyWith renders amount with two decimals and thousands separators.
func FormatCurrencyWith(symbol string, amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	intPart, frac, _ := strings.Cut(rounded.StringFixed(2), ".")
	return sign + symbol + groupThousands(intPart) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func FormatLengthOfStay(days int) string {
	switch {
	case days <= 0:
		return "Same day"
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

func RiskBadgeColor(score float64) Variant {
	switch {
	case score >= HighRiskScore:
		return Danger
	case score >= ModerateRiskScore:
		return Warning
	default:
		return Success
	}
}

// StatusBadgeColor looks status up in table; unknown values get Secondary.
func StatusBadgeColor(table map[string]Variant, status string) Variant {
	if v, ok := table[status]; ok && v != "" {
		return v
	}
	return Secondary
}
