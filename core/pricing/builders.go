package pricing

import "github.com/shopspring/decimal"

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Amount returns a price of f.
func Amount(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}
