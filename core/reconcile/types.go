package reconcile

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"pricing-modeller/core/pricing"

	"github.com/shopspring/decimal"
)

// Delta is a candidate model snapshot that may still be arriving.
// Every field is optional. Values that cannot be read yet (a half-streamed
// enum, a price typed as text) are treated as absent.
type Delta struct {
	// Features is nil when the snapshot carries no features array yet.
	Features []FeatureDelta

	// Products is nil when the snapshot carries no products array yet.
	Products []ProductDelta
}

// Complete reports whether both top-level arrays are present.
func (d Delta) Complete() bool {
	return d.Features != nil && d.Products != nil
}

// FeatureDelta is a feature as seen in a delta.
type FeatureDelta struct {
	ID           string
	Name         string
	Type         pricing.FeatureType
	Display      *pricing.Display
	CreditSchema []pricing.CreditCost
}

// ProductDelta is a product as seen in a delta.
type ProductDelta struct {
	ID        string
	Name      string
	IsDefault *bool
	IsAddOn   *bool

	// Items is nil when the product carries no items array yet.
	Items []ItemDelta
}

// ItemDelta is a product item as seen in a delta.
type ItemDelta struct {
	FeatureID     *string
	Price         *decimal.Decimal
	Interval      *pricing.Interval
	IncludedUsage *pricing.Usage
	UsageModel    *pricing.UsageModel
	BillingUnits  *float64
}

// Item converts the delta into a product item.
func (d ItemDelta) Item() pricing.ProductItem {
	return pricing.ProductItem{
		FeatureID:     d.FeatureID,
		Price:         d.Price,
		Interval:      d.Interval,
		IncludedUsage: d.IncludedUsage,
		UsageModel:    d.UsageModel,
		BillingUnits:  d.BillingUnits,
	}.Clone()
}

// DecodeDelta reads a delta from raw JSON. Only a document that is not a JSON
// object at all is an error.
func DecodeDelta(raw []byte) (Delta, error) {
	var d Delta
	err := json.Unmarshal(raw, &d)
	return d, err
}

// UnmarshalJSON reads a delta leniently.
func (d *Delta) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*d = Delta{
		Features: decodeList[FeatureDelta](fields["features"]),
		Products: decodeList[ProductDelta](fields["products"]),
	}
	return nil
}

// UnmarshalJSON reads a feature leniently.
func (f *FeatureDelta) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*f = FeatureDelta{
		ID:   decodeString(fields["id"]),
		Name: decodeString(fields["name"]),
	}
	if t := pricing.FeatureType(decodeString(fields["type"])); t.Valid() {
		f.Type = t
	}
	var display pricing.Display
	if raw, ok := fields["display"]; ok && json.Unmarshal(raw, &display) == nil && display != (pricing.Display{}) {
		f.Display = &display
	}
	for _, raw := range decodeList[json.RawMessage](fields["credit_schema"]) {
		var entry pricing.CreditCost
		if json.Unmarshal(raw, &entry) == nil && entry.MeteredFeatureID != "" {
			f.CreditSchema = append(f.CreditSchema, entry)
		}
	}
	return nil
}

// UnmarshalJSON reads a product leniently.
func (p *ProductDelta) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*p = ProductDelta{
		ID:        decodeString(fields["id"]),
		Name:      decodeString(fields["name"]),
		IsDefault: decodeBool(fields["is_default"]),
		IsAddOn:   decodeBool(fields["is_add_on"]),
		Items:     decodeList[ItemDelta](fields["items"]),
	}
	return nil
}

// UnmarshalJSON reads an item leniently.
func (i *ItemDelta) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*i = ItemDelta{}
	if raw, ok := fields["feature_id"]; ok && !isNull(raw) {
		var id string
		if json.Unmarshal(raw, &id) == nil {
			i.FeatureID = &id
		}
	}
	if raw, ok := fields["price"]; ok && !isNull(raw) {
		if d, err := decimal.NewFromString(string(bytes.TrimSpace(raw))); err == nil {
			i.Price = &d
		}
	}
	if iv := pricing.Interval(decodeString(fields["interval"])); iv.Valid() {
		i.Interval = &iv
	}
	if raw, ok := fields["included_usage"]; ok && !isNull(raw) {
		var u pricing.Usage
		if json.Unmarshal(raw, &u) == nil {
			i.IncludedUsage = &u
		}
	}
	if um := pricing.UsageModel(decodeString(fields["usage_model"])); um.Valid() {
		i.UsageModel = &um
	}
	if raw, ok := fields["billing_units"]; ok && !isNull(raw) {
		if f, err := strconv.ParseFloat(string(bytes.TrimSpace(raw)), 64); err == nil {
			i.BillingUnits = &f
		}
	}
	return nil
}

func objectFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

func decodeString(raw json.RawMessage) string {
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func decodeBool(raw json.RawMessage) *bool {
	var b bool
	if isNull(raw) || json.Unmarshal(raw, &b) != nil {
		return nil
	}
	return &b
}

// decodeList reads an array element by element, skipping elements that do not
// decode. It returns nil when raw is absent or not an array.
func decodeList[T any](raw json.RawMessage) []T {
	if isNull(raw) || !strings.HasPrefix(string(bytes.TrimSpace(raw)), "[") {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	out := make([]T, 0, len(elems))
	for _, elem := range elems {
		var v T
		if err := json.Unmarshal(elem, &v); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// Summary counts what a merge changed.
type Summary struct {
	// Skipped is set when the delta lacked a top-level array and was ignored.
	Skipped bool `json:"skipped"`

	// FeaturesAdded counts features appended by the merge.
	FeaturesAdded int `json:"features_added"`

	// FeaturesUpdated counts existing features matched by the delta.
	FeaturesUpdated int `json:"features_updated"`

	// ProductsAdded counts products appended by the merge.
	ProductsAdded int `json:"products_added"`

	// ProductsUpdated counts existing products matched by the delta.
	ProductsUpdated int `json:"products_updated"`

	// ItemsAdded counts items appended to products.
	ItemsAdded int `json:"items_added"`

	// RecordsDropped counts features, products and items excluded for
	// failing validation.
	RecordsDropped int `json:"records_dropped"`
}
