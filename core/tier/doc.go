// Package tier orders products from the lowest to the highest price tier.
//
// A product's tier is derived from its items alone:
//
//  1. Free products (no item carries a non-zero price) come before paid ones.
//  2. Between two paid or two free products, the product whose dominant
//     interval ranks lower comes first.
//  3. With equal dominant intervals, the lower total price comes first.
//
// The interval rank table runs from "no interval" (0) through minute (1) up
// to year (8). Unknown intervals rank as "no interval".
//
// # Dominant Interval
//
// DominantInterval picks the lowest-ranked interval present in an item set,
// so a product mixing one-off items with monthly items is treated as one-off.
//
// # Usage Example
//
//	tier.SortProducts(model.Products)
//	if tier.IsUpgrade(free.Items, pro.Items) {
//	    // free sorts before pro
//	}
package tier
