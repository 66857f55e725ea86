package projection

import (
	"testing"

	"pricing-modeller/core/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{amount: "29", expected: "$29"},
		{amount: "29.00", expected: "$29"},
		{amount: "0.5", expected: "$0.5"},
		{amount: "1000", expected: "$1,000"},
		{amount: "1234567.25", expected: "$1,234,567.25"},
		{amount: "0.00012", expected: "$0.00012"},
		{amount: "0.123456789012", expected: "$0.123456789"},
		{amount: "0", expected: "$0"},
		{amount: "-5", expected: "-$5"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPrice(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "Unlimited", FormatQuantity(pricing.Usage{Unlimited: true}))
	assert.Equal(t, "1,000", FormatQuantity(pricing.Usage{Value: 1000}))
	assert.Equal(t, "2.5", FormatQuantity(pricing.Usage{Value: 2.5}))
	assert.Equal(t, "10", FormatQuantity(pricing.Usage{Value: 10}))
}
