package pricing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ParseError reports raw model text that could not be turned into a valid
// model. It is surfaced to users as an "invalid JSON" flag.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid pricing model JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type rawModel struct {
	Features *[]Feature `json:"features"`
	Products *[]Product `json:"products"`
}

// Parse decodes and validates a complete pricing model.
func Parse(raw []byte) (PricingModel, error) {
	var rm rawModel
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&rm); err != nil {
		return PricingModel{}, &ParseError{Err: err}
	}
	if dec.More() {
		return PricingModel{}, &ParseError{Err: errors.New("unexpected data after the model object")}
	}
	if rm.Features == nil || rm.Products == nil {
		return PricingModel{}, &ParseError{Err: errors.New("model needs both a features and a products array")}
	}

	m := PricingModel{Features: *rm.Features, Products: *rm.Products}
	for i := range m.Products {
		if m.Products[i].Items == nil {
			m.Products[i].Items = []ProductItem{}
		}
	}
	if err := ValidateModel(m); err != nil {
		return PricingModel{}, &ParseError{Err: err}
	}
	return m, nil
}

// Decode reads a model without validating it. Missing arrays become empty.
func Decode(raw []byte) (PricingModel, error) {
	var m PricingModel
	if err := json.Unmarshal(raw, &m); err != nil {
		return PricingModel{}, err
	}
	if m.Features == nil {
		m.Features = []Feature{}
	}
	if m.Products == nil {
		m.Products = []Product{}
	}
	for i := range m.Products {
		if m.Products[i].Items == nil {
			m.Products[i].Items = []ProductItem{}
		}
	}
	return m, nil
}
