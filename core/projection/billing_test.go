package projection

import (
	"testing"

	"pricing-modeller/core/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"Pro Monthly":      "Pro",
		"Pro yearly":       "Pro",
		"Pro Monthly Plan": "Pro Plan",
		"Monthly Starter":  "Starter",
		"Team":             "Team",
		"  Enterprise  ":   "Enterprise",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, BaseName(in), in)
	}
}

func billingProducts() []pricing.Product {
	return []pricing.Product{
		{ID: "free", Name: "Free", Items: []pricing.ProductItem{{FeatureID: pricing.Ptr("sso")}}},
		{ID: "pro_monthly", Name: "Pro Monthly", Items: []pricing.ProductItem{
			{Price: pricing.Amount(29), Interval: pricing.Ptr(pricing.IntervalMonth)},
			{FeatureID: pricing.Ptr("seats"), IncludedUsage: pricing.Quantity(5)},
		}},
		{ID: "pro_yearly", Name: "Pro Yearly", Items: []pricing.ProductItem{
			{Price: pricing.Amount(290), Interval: pricing.Ptr(pricing.IntervalYear)},
			{FeatureID: pricing.Ptr("seats"), IncludedUsage: pricing.Quantity(5)},
		}},
		{ID: "team", Name: "Team", Items: []pricing.ProductItem{
			{Price: pricing.Amount(990), Interval: pricing.Ptr(pricing.IntervalYear)},
		}},
	}
}

func TestGroupByBilling(t *testing.T) {
	groups := GroupByBilling(billingProducts())
	require.Len(t, groups, 3)

	assert.Equal(t, "Free", groups[0].Name)
	require.NotNil(t, groups[0].Monthly)
	assert.Nil(t, groups[0].Yearly)

	assert.Equal(t, "Pro", groups[1].Name)
	assert.Equal(t, "pro_monthly", groups[1].Monthly.ID)
	assert.Equal(t, "pro_yearly", groups[1].Yearly.ID)
	assert.Equal(t, "pro_monthly", groups[1].Base().ID)

	assert.Equal(t, "Team", groups[2].Name)
	assert.Nil(t, groups[2].Monthly)
	assert.Equal(t, "team", groups[2].Base().ID)
}

func TestGroupByBillingOccupiedSlotStartsNewGroup(t *testing.T) {
	products := []pricing.Product{
		{ID: "a", Name: "Pro Monthly"},
		{ID: "b", Name: "Pro"},
		{ID: "c", Name: "Pro Yearly"},
	}

	groups := GroupByBilling(products)
	require.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0].Monthly.ID)
	assert.Nil(t, groups[0].Yearly)
	assert.Equal(t, "b", groups[1].Monthly.ID)
	assert.Equal(t, "c", groups[1].Yearly.ID)
}

func TestProjectGroup(t *testing.T) {
	features := testFeatures()
	groups := GroupByBilling(billingProducts())

	pro, err := ProjectGroup(groups[1], features)
	require.NoError(t, err)
	assert.Equal(t, "pro_monthly", pro.ID)
	assert.Equal(t, "Pro", pro.Name)
	assert.Equal(t, Price{PrimaryText: "$29", SecondaryText: "per month"}, pro.Price)
	require.NotNil(t, pro.PriceAnnual)
	assert.Equal(t, Price{PrimaryText: "$290", SecondaryText: "per year"}, *pro.PriceAnnual)
	assert.Equal(t, []DisplayLine{{PrimaryText: "5 seats"}}, pro.Items)

	team, err := ProjectGroup(groups[2], features)
	require.NoError(t, err)
	assert.Equal(t, Price{PrimaryText: "$990", SecondaryText: "per year"}, team.Price)
	assert.Nil(t, team.PriceAnnual)

	free, err := ProjectGroup(groups[0], features)
	require.NoError(t, err)
	assert.Equal(t, "Free", free.Price.PrimaryText)
}

func TestProjectGroupYearlyVariantMissingFeature(t *testing.T) {
	g := Group{
		Name:    "Pro",
		Monthly: &pricing.Product{ID: "m", Name: "Pro Monthly", Items: []pricing.ProductItem{{Price: pricing.Amount(10)}}},
		Yearly:  &pricing.Product{ID: "y", Name: "Pro Yearly", Items: []pricing.ProductItem{{FeatureID: pricing.Ptr("ghost"), Price: pricing.Amount(100)}}},
	}

	_, err := ProjectGroup(g, testFeatures())
	assert.ErrorIs(t, err, ErrFeatureNotFound)
}
