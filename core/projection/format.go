package projection

import (
	"strings"

	"pricing-modeller/core/pricing"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// maxFractionDigits is the most decimals a price is shown with.
const maxFractionDigits = 10

// FormatPrice renders an amount as US dollars with thousands separators and
// no trailing zero decimals, e.g. "$29", "$0.5", "$1,000".
func FormatPrice(amount decimal.Decimal) string {
	rounded := amount.Round(maxFractionDigits)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	whole := rounded.Truncate(0)
	text := "$" + humanize.BigComma(whole.BigInt())
	if frac := rounded.Sub(whole); !frac.IsZero() {
		text += strings.TrimPrefix(frac.String(), "0")
	}
	return sign + text
}

// FormatQuantity renders an included usage, or "Unlimited".
func FormatQuantity(u pricing.Usage) string {
	if u.Unlimited {
		return "Unlimited"
	}
	return FormatNumber(u.Value)
}

// FormatNumber renders a number with thousands separators.
func FormatNumber(f float64) string {
	return humanize.Commaf(f)
}
