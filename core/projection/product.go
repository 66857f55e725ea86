package projection

import (
	"errors"
	"fmt"
	"slices"

	"pricing-modeller/core/pricing"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrFeatureNotFound is returned when an item references a feature that is
// not part of the model.
var ErrFeatureNotFound = errors.New("feature not found")

// Price is the headline price of a card.
type Price struct {
	PrimaryText   string `json:"primary_text"`
	SecondaryText string `json:"secondary_text"`
}

// DisplayLine is one rendered entitlement line.
type DisplayLine struct {
	PrimaryText   string `json:"primary_text"`
	SecondaryText string `json:"secondary_text,omitempty"`
}

// Card is a rendered product, or a monthly/yearly pair of products.
type Card struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	IsAddOn     bool          `json:"is_add_on"`
	Price       Price         `json:"price"`
	PriceAnnual *Price        `json:"price_annual,omitempty"`
	Items       []DisplayLine `json:"items"`
}

var freePrice = Price{PrimaryText: "Free", SecondaryText: " "}

func itemRank(item pricing.ProductItem) int {
	switch {
	case pricing.IsFlatPrice(item):
		return 0
	case pricing.IsMeteredPrice(item):
		return 1
	default:
		return 2
	}
}

// SortItems returns a copy of items with flat prices first, then metered
// prices, then everything else. Items after the flat prices are ordered by
// feature name. The sort is stable.
func SortItems(items []pricing.ProductItem, features []pricing.Feature) []pricing.ProductItem {
	names := make(map[string]string, len(features))
	for _, f := range features {
		names[f.ID] = f.Name
	}
	col := collate.New(language.English, collate.Loose)

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b pricing.ProductItem) int {
		ra, rb := itemRank(a), itemRank(b)
		if ra != rb {
			return ra - rb
		}
		if ra == 0 {
			return 0
		}
		na, nb := names[a.FeatureKey()], names[b.FeatureKey()]
		if na == "" || nb == "" {
			return 0
		}
		return col.CompareString(na, nb)
	})
	return sorted
}

// Headline returns the price shown at the top of a card for items already
// ordered by SortItems. Items without any price yield "Free".
func Headline(sorted []pricing.ProductItem, features []pricing.Feature) (Price, error) {
	if !slices.ContainsFunc(sorted, pricing.IsPriceItem) {
		return freePrice, nil
	}

	first := sorted[0]
	if pricing.IsFlatPrice(first) {
		return flatPrice(first), nil
	}
	feature, err := lookup(features, first)
	if err != nil {
		return Price{}, err
	}
	line := meteredLine(feature, first, true)
	return Price(line), nil
}

// ProjectProduct renders a single product. The first price item becomes the
// headline and every other item becomes a display line. A reference to an
// unknown feature fails the whole product.
func ProjectProduct(p pricing.Product, features []pricing.Feature) (Card, error) {
	sorted := SortItems(p.Items, features)

	price, err := Headline(sorted, features)
	if err != nil {
		return Card{}, fmt.Errorf("product %s: %w", p.ID, err)
	}
	if pricing.IsPriceItem(firstOrZero(sorted)) {
		sorted = sorted[1:]
	}

	lines, err := displayLines(sorted, features)
	if err != nil {
		return Card{}, fmt.Errorf("product %s: %w", p.ID, err)
	}
	return Card{
		ID:      p.ID,
		Name:    p.Name,
		IsAddOn: p.IsAddOn,
		Price:   price,
		Items:   lines,
	}, nil
}

func displayLines(items []pricing.ProductItem, features []pricing.Feature) ([]DisplayLine, error) {
	lines := make([]DisplayLine, 0, len(items))
	for _, item := range items {
		if pricing.IsFlatPrice(item) {
			lines = append(lines, DisplayLine(flatPrice(item)))
			continue
		}
		feature, err := lookup(features, item)
		if err != nil {
			return nil, err
		}
		if pricing.IsMeteredPrice(item) {
			lines = append(lines, meteredLine(feature, item, false))
			continue
		}
		lines = append(lines, featureLine(feature, item))
	}
	return lines, nil
}

func flatPrice(item pricing.ProductItem) Price {
	p := Price{PrimaryText: FormatPrice(*item.Price)}
	if item.Interval != nil {
		p.SecondaryText = "per " + string(*item.Interval)
	}
	return p
}

// featureLine renders an item that grants a feature without charging for it.
func featureLine(feature pricing.Feature, item pricing.ProductItem) DisplayLine {
	if feature.Type == pricing.FeatureBoolean {
		return DisplayLine{PrimaryText: feature.Name}
	}

	name := feature.DisplayName(includedPlural(item))
	if item.IncludedUsage == nil || item.IncludedUsage.IsZero() {
		return DisplayLine{PrimaryText: name}
	}
	return DisplayLine{PrimaryText: FormatQuantity(*item.IncludedUsage) + " " + name}
}

// meteredLine renders an item charged by usage. The interval is appended
// only for the headline.
func meteredLine(feature pricing.Feature, item pricing.ProductItem, headline bool) DisplayLine {
	units := item.Units()
	per := feature.DisplayName(units > 1)
	if units > 1 {
		per = FormatNumber(units) + " " + per
	}
	if headline && item.Interval != nil {
		per += " per " + string(*item.Interval)
	}

	price := FormatPrice(*item.Price)
	if item.IncludedUsage != nil && !item.IncludedUsage.IsZero() {
		return DisplayLine{
			PrimaryText:   FormatQuantity(*item.IncludedUsage) + " included",
			SecondaryText: "then " + price + " per " + per,
		}
	}
	return DisplayLine{PrimaryText: price, SecondaryText: "per " + per}
}

func includedPlural(item pricing.ProductItem) bool {
	if item.IncludedUsage == nil {
		return false
	}
	return item.IncludedUsage.Unlimited || item.IncludedUsage.Value > 1
}

func lookup(features []pricing.Feature, item pricing.ProductItem) (pricing.Feature, error) {
	for _, f := range features {
		if f.ID == item.FeatureKey() {
			return f, nil
		}
	}
	return pricing.Feature{}, fmt.Errorf("%w: %s", ErrFeatureNotFound, item.FeatureKey())
}

func firstOrZero(items []pricing.ProductItem) pricing.ProductItem {
	if len(items) == 0 {
		return pricing.ProductItem{}
	}
	return items[0]
}
