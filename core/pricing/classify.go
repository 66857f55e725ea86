package pricing

// ItemKind is the display bucket an item falls into.
type ItemKind int

const (
	// KindInvalid is an item with neither a feature nor a price.
	KindInvalid ItemKind = iota
	// KindFlatPrice is a price with no feature attached.
	KindFlatPrice
	// KindMeteredPrice is a feature charged by usage.
	KindMeteredPrice
	// KindPlainFeature is a feature with no price, possibly with included usage.
	KindPlainFeature
	// KindBooleanFeature is a plain feature with no interval and no included usage.
	KindBooleanFeature
)

func (k ItemKind) String() string {
	switch k {
	case KindFlatPrice:
		return "flat_price"
	case KindMeteredPrice:
		return "metered_price"
	case KindPlainFeature:
		return "plain_feature"
	case KindBooleanFeature:
		return "boolean_feature"
	default:
		return "invalid"
	}
}

func hasPrice(item ProductItem) bool {
	return item.Price != nil
}

func hasFeature(item ProductItem) bool {
	return item.FeatureID != nil
}

func priceIsZero(item ProductItem) bool {
	return item.Price == nil || item.Price.IsZero()
}

// IsBooleanFeature reports whether the item is an on/off entitlement.
func IsBooleanFeature(item ProductItem) bool {
	return hasFeature(item) && priceIsZero(item) && item.Interval == nil && item.IncludedUsage == nil
}

// IsPlainFeature reports whether the item grants a feature without charging
// for it. Every boolean feature item is also a plain feature item.
func IsPlainFeature(item ProductItem) bool {
	return hasFeature(item) && priceIsZero(item)
}

// IsFlatPrice reports whether the item is a fixed price with no feature.
func IsFlatPrice(item ProductItem) bool {
	return hasPrice(item) && !hasFeature(item)
}

// IsMeteredPrice reports whether the item charges for a feature's usage.
func IsMeteredPrice(item ProductItem) bool {
	return hasFeature(item) && hasPrice(item)
}

// Classify places an item in exactly one bucket, checking flat price, then
// metered price, then plain feature (with the boolean sub-case).
func Classify(item ProductItem) ItemKind {
	switch {
	case IsFlatPrice(item):
		return KindFlatPrice
	case IsMeteredPrice(item):
		return KindMeteredPrice
	case IsBooleanFeature(item):
		return KindBooleanFeature
	case IsPlainFeature(item):
		return KindPlainFeature
	default:
		return KindInvalid
	}
}

// IsPriceItem reports whether the item carries a price of either kind.
func IsPriceItem(item ProductItem) bool {
	return IsFlatPrice(item) || IsMeteredPrice(item)
}
