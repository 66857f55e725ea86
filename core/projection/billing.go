package projection

import (
	"fmt"
	"regexp"
	"strings"

	"pricing-modeller/core/pricing"
)

var (
	cycleQualifier = regexp.MustCompile(`(?i)\s*(monthly|yearly)\s*`)
	whitespace     = regexp.MustCompile(`\s+`)
)

// Group pairs the monthly and yearly variants of one plan.
type Group struct {
	// Name is the plan name with the billing qualifier removed.
	Name string

	// Monthly is the monthly variant, or the plan itself when it has no
	// billing qualifier.
	Monthly *pricing.Product

	// Yearly is the yearly variant.
	Yearly *pricing.Product
}

// Base returns the product the card's lines and id are taken from.
func (g Group) Base() pricing.Product {
	if g.Monthly != nil {
		return *g.Monthly
	}
	return *g.Yearly
}

// BaseName strips the first monthly/yearly qualifier from a product name.
// "Pro Monthly" becomes "Pro" and "Pro Monthly Plan" becomes "Pro Plan".
func BaseName(name string) string {
	loc := cycleQualifier.FindStringIndex(name)
	if loc != nil {
		name = name[:loc[0]] + " " + name[loc[1]:]
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(name, " "))
}

func isMonthly(p pricing.Product) bool {
	return strings.Contains(strings.ToLower(p.Name), "monthly")
}

func isYearly(p pricing.Product) bool {
	if strings.Contains(strings.ToLower(p.Name), "yearly") {
		return true
	}
	for _, item := range p.Items {
		if item.Interval != nil && *item.Interval == pricing.IntervalYear {
			return true
		}
	}
	return false
}

// GroupByBilling pairs products by base name in first-appearance order.
// Products named "monthly" fill the monthly slot, products named "yearly" or
// billed yearly fill the yearly slot, and anything else counts as monthly. A
// product whose slot is already taken starts a group of its own.
func GroupByBilling(products []pricing.Product) []Group {
	var groups []Group
	latest := make(map[string]int)

	for i := range products {
		p := products[i].Clone()
		name := BaseName(p.Name)
		yearly := !isMonthly(p) && isYearly(p)

		idx, ok := latest[name]
		if ok {
			g := &groups[idx]
			if (yearly && g.Yearly != nil) || (!yearly && g.Monthly != nil) {
				ok = false
			}
		}
		if !ok {
			groups = append(groups, Group{Name: name})
			idx = len(groups) - 1
			latest[name] = idx
		}

		if yearly {
			groups[idx].Yearly = &p
		} else {
			groups[idx].Monthly = &p
		}
	}
	return groups
}

// ProjectGroup renders a billing group as one card. The monthly variant
// supplies the headline price, the yearly one the annual price when both
// exist.
func ProjectGroup(g Group, features []pricing.Feature) (Card, error) {
	base := g.Base()
	card, err := ProjectProduct(base, features)
	if err != nil {
		return Card{}, err
	}
	card.Name = BaseName(base.Name)

	if g.Monthly != nil && g.Yearly != nil {
		annual, err := Headline(SortItems(g.Yearly.Items, features), features)
		if err != nil {
			return Card{}, fmt.Errorf("product %s: %w", g.Yearly.ID, err)
		}
		card.PriceAnnual = &annual
	}
	return card, nil
}
