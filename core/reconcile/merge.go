package reconcile

import (
	"strings"

	"pricing-modeller/core/pricing"
	"pricing-modeller/core/utils"
)

// Merge folds a delta into prev and returns the merged model along with a
// summary of what changed. prev is never modified.
//
// A delta missing either top-level array is ignored. Existing records are
// matched by id and coalesced field by field, new records are appended, and
// items failing validation are excluded. Ids present in prev are always
// present in the result.
func Merge(prev pricing.PricingModel, d Delta) (pricing.PricingModel, Summary) {
	if !d.Complete() {
		return prev.Clone(), Summary{Skipped: true}
	}

	var sum Summary
	merged := pricing.PricingModel{
		Features: mergeFeatures(prev.Features, d.Features, &sum),
		Products: mergeProducts(prev.Products, d.Products, &sum),
	}
	return merged, sum
}

func mergeFeatures(prev []pricing.Feature, candidates []FeatureDelta, sum *Summary) []pricing.Feature {
	out := make([]pricing.Feature, 0, len(prev)+len(candidates))
	known := make(map[string]struct{}, len(prev)+len(candidates))

	for _, f := range prev {
		known[f.ID] = struct{}{}
		c, ok := findFeature(candidates, f.ID)
		if !ok {
			out = append(out, f.Clone())
			continue
		}

		merged := f.Clone()
		merged.Name = utils.CoalesceString(c.Name, f.Name)
		merged.Type = utils.CoalesceValid(c.Type, f.Type, pricing.FeatureType.Valid)
		merged.Display = utils.Coalesce(c.Display, merged.Display)
		merged.CreditSchema = utils.CoalesceSlice(c.CreditSchema, merged.CreditSchema)
		if pricing.ValidateFeatureStub(merged) != nil {
			// Keep the last good version rather than the broken update.
			merged = f.Clone()
			sum.RecordsDropped++
		}
		out = append(out, merged)
		sum.FeaturesUpdated++
	}

	for _, c := range candidates {
		if _, ok := known[c.ID]; ok {
			continue
		}
		f := c.feature()
		if strings.TrimSpace(c.ID) == "" || pricing.ValidateFeatureStub(f) != nil {
			sum.RecordsDropped++
			continue
		}
		known[c.ID] = struct{}{}
		out = append(out, f)
		sum.FeaturesAdded++
	}
	return out
}

func mergeProducts(prev []pricing.Product, candidates []ProductDelta, sum *Summary) []pricing.Product {
	out := make([]pricing.Product, 0, len(prev)+len(candidates))
	known := make(map[string]struct{}, len(prev)+len(candidates))

	for _, p := range prev {
		known[p.ID] = struct{}{}
		merged := p.Clone()
		c, ok := findProduct(candidates, p.ID)
		if !ok {
			merged.Items = mergeItems(p.Items, nil, sum)
			out = append(out, merged)
			continue
		}

		merged.Name = utils.CoalesceString(c.Name, p.Name)
		if c.IsAddOn != nil {
			merged.IsAddOn = *c.IsAddOn
		}
		merged.Items = mergeItems(p.Items, c.Items, sum)
		out = append(out, merged)
		sum.ProductsUpdated++
	}

	for _, c := range candidates {
		if _, ok := known[c.ID]; ok {
			continue
		}
		if strings.TrimSpace(c.ID) == "" {
			sum.RecordsDropped++
			continue
		}
		known[c.ID] = struct{}{}

		p := pricing.Product{ID: c.ID, Name: c.Name, Items: mergeItems(nil, c.Items, sum)}
		if c.IsDefault != nil {
			p.IsDefault = *c.IsDefault
		}
		if c.IsAddOn != nil {
			p.IsAddOn = *c.IsAddOn
		}
		out = append(out, p)
		sum.ProductsAdded++
	}
	return out
}

// mergeItems matches items with a feature by feature id, and price-only items
// by their position among the price-only items of each list. The result never
// holds two items with the same feature id.
func mergeItems(prev []pricing.ProductItem, candidates []ItemDelta, sum *Summary) []pricing.ProductItem {
	out := make([]pricing.ProductItem, 0, len(prev)+len(candidates))
	seen := make(map[string]struct{}, len(prev)+len(candidates))

	byFeature := make(map[string]ItemDelta, len(candidates))
	var priceOnly []ItemDelta
	for _, c := range candidates {
		if c.FeatureID == nil {
			priceOnly = append(priceOnly, c)
			continue
		}
		if _, dup := byFeature[*c.FeatureID]; !dup {
			byFeature[*c.FeatureID] = c
		}
	}

	matchedPriceOnly := 0
	for _, item := range prev {
		if item.FeatureID != nil {
			if _, dup := seen[*item.FeatureID]; dup {
				sum.RecordsDropped++
				continue
			}
		}

		merged := item.Clone()
		if item.FeatureID == nil {
			if matchedPriceOnly < len(priceOnly) {
				merged = coalesceItem(item, priceOnly[matchedPriceOnly])
				matchedPriceOnly++
			}
		} else if c, ok := byFeature[*item.FeatureID]; ok {
			merged = coalesceItem(item, c)
		}

		if pricing.ValidateItem(merged) != nil {
			if pricing.ValidateItem(item) != nil {
				sum.RecordsDropped++
				continue
			}
			// Keep the last good version rather than the broken update.
			merged = item.Clone()
			sum.RecordsDropped++
		}
		if merged.FeatureID != nil {
			seen[*merged.FeatureID] = struct{}{}
		}
		out = append(out, merged)
	}

	priceOnlyIdx := 0
	for _, c := range candidates {
		if c.FeatureID == nil {
			priceOnlyIdx++
			if priceOnlyIdx <= matchedPriceOnly {
				continue
			}
		} else if _, ok := seen[*c.FeatureID]; ok {
			continue
		}

		item := c.Item()
		if pricing.ValidateItem(item) != nil {
			sum.RecordsDropped++
			continue
		}
		if item.FeatureID != nil {
			seen[*item.FeatureID] = struct{}{}
		}
		out = append(out, item)
		sum.ItemsAdded++
	}
	return out
}

func coalesceItem(prev pricing.ProductItem, c ItemDelta) pricing.ProductItem {
	merged := prev.Clone()
	merged.IncludedUsage = utils.Coalesce(c.IncludedUsage, merged.IncludedUsage)
	merged.Interval = utils.Coalesce(c.Interval, merged.Interval)
	merged.UsageModel = utils.Coalesce(c.UsageModel, merged.UsageModel)
	merged.Price = utils.Coalesce(c.Price, merged.Price)
	merged.BillingUnits = utils.Coalesce(c.BillingUnits, merged.BillingUnits)
	return merged
}

func findFeature(candidates []FeatureDelta, id string) (FeatureDelta, bool) {
	for _, c := range candidates {
		if c.ID == id {
			return c, true
		}
	}
	return FeatureDelta{}, false
}

func findProduct(candidates []ProductDelta, id string) (ProductDelta, bool) {
	for _, c := range candidates {
		if c.ID == id {
			return c, true
		}
	}
	return ProductDelta{}, false
}

func (c FeatureDelta) feature() pricing.Feature {
	f := pricing.Feature{ID: c.ID, Name: c.Name, Type: c.Type}
	if c.Display != nil {
		d := *c.Display
		f.Display = &d
	}
	if len(c.CreditSchema) > 0 {
		f.CreditSchema = append([]pricing.CreditCost(nil), c.CreditSchema...)
	}
	return f
}
