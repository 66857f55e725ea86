package projection

import (
	"slices"

	"pricing-modeller/core/pricing"
	"pricing-modeller/core/tier"
)

// Failure records a product that could not be rendered.
type Failure struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Error     string `json:"error"`
}

// Table is the render-ready view of a whole model.
type Table struct {
	Cards    []Card         `json:"cards"`
	Failures []Failure      `json:"failures,omitempty"`
	Credits  []CreditSystem `json:"credits,omitempty"`
}

// BuildTable groups the model's products by billing cycle, renders each
// group and orders the cards from the lowest to the highest tier. Groups that
// fail to render are reported as failures and left out of the cards.
func BuildTable(m pricing.PricingModel) Table {
	type ranked struct {
		card  Card
		items []pricing.ProductItem
	}

	groups := GroupByBilling(m.Products)
	rendered := make([]ranked, 0, len(groups))
	var failures []Failure

	for _, g := range groups {
		base := g.Base()
		card, err := ProjectGroup(g, m.Features)
		if err != nil {
			failures = append(failures, Failure{ProductID: base.ID, Name: base.Name, Error: err.Error()})
			continue
		}
		rendered = append(rendered, ranked{card: card, items: base.Items})
	}

	slices.SortStableFunc(rendered, func(a, b ranked) int {
		return tier.Compare(a.items, b.items)
	})

	cards := make([]Card, len(rendered))
	for i, r := range rendered {
		cards[i] = r.card
	}
	return Table{Cards: cards, Failures: failures, Credits: CreditSystems(m)}
}
