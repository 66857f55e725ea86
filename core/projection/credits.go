package projection

import (
	"strconv"

	"pricing-modeller/core/pricing"
)

// CreditCost is one rendered credit schema entry.
type CreditCost struct {
	Feature string  `json:"feature"`
	Cost    float64 `json:"cost"`
	Unit    string  `json:"unit"`
}

// Text returns the entry as "<cost> credit(s)".
func (c CreditCost) Text() string {
	return strconv.FormatFloat(c.Cost, 'f', -1, 64) + " " + c.Unit
}

// CreditSystem is a rendered credit_system feature.
type CreditSystem struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Entries []CreditCost `json:"entries"`
}

// CreditSystems renders every credit_system feature of the model. Entries
// pointing at unknown features fall back to the raw feature id.
func CreditSystems(m pricing.PricingModel) []CreditSystem {
	var systems []CreditSystem
	for _, f := range m.Features {
		if f.Type != pricing.FeatureCreditSystem {
			continue
		}

		sys := CreditSystem{ID: f.ID, Name: f.Name, Entries: make([]CreditCost, 0, len(f.CreditSchema))}
		for _, entry := range f.CreditSchema {
			name := entry.MeteredFeatureID
			if metered, ok := m.FindFeature(entry.MeteredFeatureID); ok && metered.Name != "" {
				name = metered.Name
			}
			unit := "credits"
			if entry.CreditCost == 1 {
				unit = "credit"
			}
			sys.Entries = append(sys.Entries, CreditCost{Feature: name, Cost: entry.CreditCost, Unit: unit})
		}
		systems = append(systems, sys)
	}
	return systems
}
