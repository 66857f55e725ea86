package pricing

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// FeatureType classifies how a feature is metered.
type FeatureType string

const (
	// FeatureBoolean is an on/off entitlement.
	FeatureBoolean FeatureType = "boolean"
	// FeatureSingleUse is consumed and optionally reset on an interval.
	FeatureSingleUse FeatureType = "single_use"
	// FeatureContinuousUse is a reversible quantity, never reset on an interval.
	FeatureContinuousUse FeatureType = "continuous_use"
	// FeatureCreditSystem tracks a shared balance consumed by other features.
	FeatureCreditSystem FeatureType = "credit_system"
)

// Valid reports whether t is a known feature type.
func (t FeatureType) Valid() bool {
	switch t {
	case FeatureBoolean, FeatureSingleUse, FeatureContinuousUse, FeatureCreditSystem:
		return true
	default:
		return false
	}
}

// Interval is a billing or reset cadence.
type Interval string

const (
	IntervalMinute     Interval = "minute"
	IntervalHour       Interval = "hour"
	IntervalDay        Interval = "day"
	IntervalWeek       Interval = "week"
	IntervalMonth      Interval = "month"
	IntervalQuarter    Interval = "quarter"
	IntervalSemiAnnual Interval = "semi_annual"
	IntervalYear       Interval = "year"
)

// Intervals lists every known interval from finest to coarsest.
var Intervals = []Interval{
	IntervalMinute, IntervalHour, IntervalDay, IntervalWeek,
	IntervalMonth, IntervalQuarter, IntervalSemiAnnual, IntervalYear,
}

// Valid reports whether i is a known interval.
func (i Interval) Valid() bool {
	for _, known := range Intervals {
		if i == known {
			return true
		}
	}
	return false
}

// UsageModel describes how metered usage is paid for.
type UsageModel string

const (
	UsagePayPerUse UsageModel = "pay_per_use"
	UsagePrepaid   UsageModel = "prepaid"
)

// Valid reports whether m is a known usage model.
func (m UsageModel) Valid() bool {
	return m == UsagePayPerUse || m == UsagePrepaid
}

// Display overrides the feature name in singular and plural form.
type Display struct {
	Singular string `json:"singular,omitempty"`
	Plural   string `json:"plural,omitempty"`
}

// CreditCost is one entry of a credit system's schema.
type CreditCost struct {
	MeteredFeatureID string  `json:"metered_feature_id" validate:"required"`
	CreditCost       float64 `json:"credit_cost" validate:"gte=0"`
}

// Feature is a billable capability.
type Feature struct {
	ID           string       `json:"id" validate:"required"`
	Name         string       `json:"name" validate:"required"`
	Type         FeatureType  `json:"type" validate:"required,feature_type"`
	Display      *Display     `json:"display,omitempty"`
	CreditSchema []CreditCost `json:"credit_schema,omitempty" validate:"omitempty,dive"`
}

// DisplayName returns the name to show for the feature, honouring the
// display override when one is set.
func (f Feature) DisplayName(plural bool) string {
	name := f.Name
	if f.Display != nil {
		if plural && f.Display.Plural != "" {
			name = f.Display.Plural
		} else if !plural && f.Display.Singular != "" {
			name = f.Display.Singular
		}
	}
	return name
}

// ProductItem is one entitlement or price line within a product.
type ProductItem struct {
	FeatureID     *string          `json:"feature_id,omitempty" validate:"omitempty,min=1"`
	Price         *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0"`
	Interval      *Interval        `json:"interval,omitempty" validate:"omitempty,interval"`
	IncludedUsage *Usage           `json:"included_usage,omitempty"`
	UsageModel    *UsageModel      `json:"usage_model,omitempty" validate:"omitempty,usage_model"`
	BillingUnits  *float64         `json:"billing_units,omitempty" validate:"omitempty,gt=0"`
}

// FeatureKey returns the item's feature id, or "" for price-only items.
func (i ProductItem) FeatureKey() string {
	if i.FeatureID == nil {
		return ""
	}
	return *i.FeatureID
}

// Units returns the billing batch size, defaulting to 1.
func (i ProductItem) Units() float64 {
	if i.BillingUnits == nil || *i.BillingUnits <= 0 {
		return 1
	}
	return *i.BillingUnits
}

// Product is a purchasable plan.
type Product struct {
	ID        string        `json:"id" validate:"required"`
	Name      string        `json:"name" validate:"required"`
	IsDefault bool          `json:"is_default"`
	IsAddOn   bool          `json:"is_add_on"`
	Items     []ProductItem `json:"items" validate:"dive"`
}

// PricingModel is the root aggregate of features and products.
type PricingModel struct {
	Features []Feature `json:"features" validate:"dive"`
	Products []Product `json:"products" validate:"dive"`
}

// Empty returns a model with no features and no products.
func Empty() PricingModel {
	return PricingModel{Features: []Feature{}, Products: []Product{}}
}

// FindFeature returns the feature with the given id.
func (m PricingModel) FindFeature(id string) (Feature, bool) {
	for _, f := range m.Features {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

// FindProduct returns the product with the given id.
func (m PricingModel) FindProduct(id string) (Product, bool) {
	for _, p := range m.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Clone returns a deep copy of the model.
func (m PricingModel) Clone() PricingModel {
	out := PricingModel{
		Features: make([]Feature, len(m.Features)),
		Products: make([]Product, len(m.Products)),
	}
	for i, f := range m.Features {
		out.Features[i] = f.Clone()
	}
	for i, p := range m.Products {
		out.Products[i] = p.Clone()
	}
	return out
}

// Clone returns a deep copy of the feature.
func (f Feature) Clone() Feature {
	out := f
	if f.Display != nil {
		d := *f.Display
		out.Display = &d
	}
	if f.CreditSchema != nil {
		out.CreditSchema = append([]CreditCost(nil), f.CreditSchema...)
	}
	return out
}

// Clone returns a deep copy of the product.
func (p Product) Clone() Product {
	out := p
	if p.Items != nil {
		out.Items = make([]ProductItem, len(p.Items))
		for i, item := range p.Items {
			out.Items[i] = item.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the item.
func (i ProductItem) Clone() ProductItem {
	out := i
	out.FeatureID = clonePtr(i.FeatureID)
	out.Price = clonePtr(i.Price)
	out.Interval = clonePtr(i.Interval)
	out.IncludedUsage = clonePtr(i.IncludedUsage)
	out.UsageModel = clonePtr(i.UsageModel)
	out.BillingUnits = clonePtr(i.BillingUnits)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
