// Package pricing defines the pricing model: features, products and the
// items that tie them together.
//
// # Records
//
//   - Feature: a billable capability (boolean, single_use, continuous_use,
//     credit_system), optionally with display names and a credit schema.
//   - Product: a plan with an ordered list of items. Product ids are stable
//     across edits and act as the merge key.
//   - ProductItem: a feature entitlement, a price, or a priced feature.
//
// # Validation
//
// ValidateItem, ValidateFeature, ValidateProduct and ValidateModel check the
// structural rules using go-playground/validator. Every item must carry a
// feature id, a price, or both, and no product may list the same feature
// twice. Parse decodes raw JSON and validates it in one step; it is used by
// the manual edit path.
//
// # Classification
//
// IsFlatPrice, IsMeteredPrice, IsPlainFeature and IsBooleanFeature label an
// item. Classify applies them in precedence order so that every valid item
// lands in exactly one bucket.
//
// # Usage
//
//	m, err := pricing.Parse(raw)
//	if err != nil {
//	    var perr *pricing.ParseError
//	    errors.As(err, &perr)
//	}
//	kind := pricing.Classify(m.Products[0].Items[0])
package pricing
