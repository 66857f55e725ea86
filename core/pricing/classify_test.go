package pricing_test

import (
	"testing"

	"pricing-modeller/core/pricing"

	"github.com/stretchr/testify/assert"
)

func TestClassifierPredicates(t *testing.T) {
	tests := []struct {
		name     string
		item     pricing.ProductItem
		boolean  bool
		plain    bool
		flat     bool
		metered  bool
		expected pricing.ItemKind
	}{
		{
			name:     "Boolean feature",
			item:     pricing.ProductItem{FeatureID: pricing.Ptr("sso")},
			boolean:  true,
			plain:    true,
			expected: pricing.KindBooleanFeature,
		},
		{
			name:     "Boolean feature with zero price",
			item:     pricing.ProductItem{FeatureID: pricing.Ptr("sso"), Price: pricing.Amount(0)},
			boolean:  true,
			plain:    true,
			metered:  true,
			expected: pricing.KindMeteredPrice,
		},
		{
			name: "Plain feature with included usage",
			item: pricing.ProductItem{
				FeatureID:     pricing.Ptr("api"),
				IncludedUsage: pricing.Quantity(1000),
				Interval:      pricing.Ptr(pricing.IntervalMonth),
			},
			plain:    true,
			expected: pricing.KindPlainFeature,
		},
		{
			name:     "Flat price",
			item:     pricing.ProductItem{Price: pricing.Amount(29), Interval: pricing.Ptr(pricing.IntervalMonth)},
			flat:     true,
			expected: pricing.KindFlatPrice,
		},
		{
			name:     "Metered price",
			item:     pricing.ProductItem{FeatureID: pricing.Ptr("api"), Price: pricing.Amount(0.01)},
			metered:  true,
			expected: pricing.KindMeteredPrice,
		},
		{
			name:     "Neither feature nor price",
			item:     pricing.ProductItem{Interval: pricing.Ptr(pricing.IntervalMonth)},
			expected: pricing.KindInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.boolean, pricing.IsBooleanFeature(tt.item))
			assert.Equal(t, tt.plain, pricing.IsPlainFeature(tt.item))
			assert.Equal(t, tt.flat, pricing.IsFlatPrice(tt.item))
			assert.Equal(t, tt.metered, pricing.IsMeteredPrice(tt.item))
			assert.Equal(t, tt.expected, pricing.Classify(tt.item))
		})
	}
}

// Every item with a feature or a price lands in exactly one bucket.
func TestClassifyPartition(t *testing.T) {
	featureIDs := []*string{nil, pricing.Ptr("f1")}
	amounts := []*float64{nil, pricing.Ptr(0.0), pricing.Ptr(10.0)}
	intervals := []*pricing.Interval{nil, pricing.Ptr(pricing.IntervalMonth)}
	usages := []*pricing.Usage{nil, pricing.Quantity(0), pricing.Quantity(5), pricing.Unlimited()}

	for _, fid := range featureIDs {
		for _, a := range amounts {
			for _, iv := range intervals {
				for _, u := range usages {
					item := pricing.ProductItem{FeatureID: fid, Interval: iv, IncludedUsage: u}
					if a != nil {
						item.Price = pricing.Amount(*a)
					}
					if fid == nil && item.Price == nil {
						assert.Equal(t, pricing.KindInvalid, pricing.Classify(item))
						continue
					}

					kind := pricing.Classify(item)
					assert.NotEqual(t, pricing.KindInvalid, kind)

					matches := 0
					if pricing.IsFlatPrice(item) {
						matches++
					}
					if pricing.IsMeteredPrice(item) {
						matches++
					}
					if pricing.IsPlainFeature(item) && !pricing.IsMeteredPrice(item) {
						matches++
					}
					assert.Equal(t, 1, matches, "item %+v", item)
				}
			}
		}
	}
}

func TestFeatureDisplayName(t *testing.T) {
	f := pricing.Feature{ID: "seat", Name: "Seat", Type: pricing.FeatureContinuousUse}
	assert.Equal(t, "Seat", f.DisplayName(false))
	assert.Equal(t, "Seat", f.DisplayName(true))

	f.Display = &pricing.Display{Singular: "seat", Plural: "seats"}
	assert.Equal(t, "seat", f.DisplayName(false))
	assert.Equal(t, "seats", f.DisplayName(true))

	f.Display = &pricing.Display{Singular: "seat"}
	assert.Equal(t, "Seat", f.DisplayName(true))
}
