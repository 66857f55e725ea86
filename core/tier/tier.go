package tier

import (
	"slices"

	"pricing-modeller/core/pricing"

	"github.com/shopspring/decimal"
)

// IntervalRank returns the position of an interval in the rank table.
// A nil or unknown interval ranks 0.
func IntervalRank(iv *pricing.Interval) int {
	if iv == nil {
		return 0
	}
	for i, known := range pricing.Intervals {
		if *iv == known {
			return i + 1
		}
	}
	return 0
}

// IsFree reports whether no item carries a non-zero price.
func IsFree(items []pricing.ProductItem) bool {
	for _, item := range items {
		if item.Price != nil && !item.Price.IsZero() {
			return false
		}
	}
	return true
}

// DominantInterval returns the lowest-ranked interval among items, or nil
// when there are no items or the lowest rank is "no interval".
func DominantInterval(items []pricing.ProductItem) *pricing.Interval {
	if len(items) == 0 {
		return nil
	}
	best := items[0].Interval
	bestRank := IntervalRank(best)
	for _, item := range items[1:] {
		if r := IntervalRank(item.Interval); r < bestRank {
			best, bestRank = item.Interval, r
		}
	}
	if bestRank == 0 {
		return nil
	}
	iv := *best
	return &iv
}

// TotalPrice sums every item price, counting absent prices as zero.
func TotalPrice(items []pricing.ProductItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Price != nil {
			total = total.Add(*item.Price)
		}
	}
	return total
}

// IsUpgrade reports whether a product with items a belongs in a lower tier
// than one with items b, meaning a sorts first.
func IsUpgrade(a, b []pricing.ProductItem) bool {
	freeA, freeB := IsFree(a), IsFree(b)
	if freeA && !freeB {
		return true
	}
	if !freeA && freeB {
		return false
	}

	rankA := IntervalRank(DominantInterval(a))
	rankB := IntervalRank(DominantInterval(b))
	if rankA == rankB {
		return TotalPrice(a).LessThan(TotalPrice(b))
	}
	return rankA < rankB
}

// Compare is a three-way comparator over item sets. It returns 0 when
// neither side is an upgrade of the other.
func Compare(a, b []pricing.ProductItem) int {
	switch {
	case IsUpgrade(a, b):
		return -1
	case IsUpgrade(b, a):
		return 1
	default:
		return 0
	}
}

// SortProducts orders products in place from lowest to highest tier.
// Products of equal tier keep their relative order.
func SortProducts(products []pricing.Product) {
	slices.SortStableFunc(products, func(a, b pricing.Product) int {
		return Compare(a.Items, b.Items)
	})
}
