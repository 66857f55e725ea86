package pricing

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidModel is returned when a record or model breaks a structural rule.
var ErrInvalidModel = errors.New("invalid pricing model")

// ValidationError lists the rule violations found in a record.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidModel, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidModel
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("feature_type", func(fl validator.FieldLevel) bool {
			return FeatureType(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("interval", func(fl validator.FieldLevel) bool {
			return Interval(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("usage_model", func(fl validator.FieldLevel) bool {
			return UsageModel(fl.Field().String()).Valid()
		})

		v.RegisterStructValidation(itemRules, ProductItem{})
		v.RegisterStructValidation(featureRules, Feature{})
		v.RegisterStructValidation(productRules, Product{})

		validate = v
	})
	return validate
}

func itemRules(sl validator.StructLevel) {
	item := sl.Current().Interface().(ProductItem)
	if item.FeatureID == nil && item.Price == nil {
		sl.ReportError(item.FeatureID, "feature_id", "FeatureID", "feature_or_price", "")
	}
	if item.IncludedUsage != nil && !item.IncludedUsage.Unlimited && item.IncludedUsage.Value < 0 {
		sl.ReportError(item.IncludedUsage, "included_usage", "IncludedUsage", "gte", "0")
	}
}

func featureRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(Feature)
	if len(f.CreditSchema) > 0 && f.Type != FeatureCreditSystem {
		sl.ReportError(f.CreditSchema, "credit_schema", "CreditSchema", "credit_system_only", "")
	}
	for _, entry := range f.CreditSchema {
		if entry.MeteredFeatureID == f.ID {
			sl.ReportError(f.CreditSchema, "credit_schema", "CreditSchema", "self_reference", f.ID)
			break
		}
	}
}

func productRules(sl validator.StructLevel) {
	p := sl.Current().Interface().(Product)
	seen := make(map[string]struct{}, len(p.Items))
	for _, item := range p.Items {
		if item.FeatureID == nil {
			continue
		}
		if _, dup := seen[*item.FeatureID]; dup {
			sl.ReportError(p.Items, "items", "Items", "unique_feature", *item.FeatureID)
			return
		}
		seen[*item.FeatureID] = struct{}{}
	}
}

// ValidateItem checks a single product item.
func ValidateItem(item ProductItem) error {
	return wrapValidation(validatorInstance().Struct(item))
}

// ValidateFeature checks a single feature.
func ValidateFeature(f Feature) error {
	return wrapValidation(validatorInstance().Struct(f))
}

// ValidateFeatureStub checks a feature whose name may still be arriving.
func ValidateFeatureStub(f Feature) error {
	return wrapValidation(validatorInstance().StructExcept(f, "Name"))
}

// ValidateProduct checks a product and all of its items.
func ValidateProduct(p Product) error {
	return wrapValidation(validatorInstance().Struct(p))
}

// ValidateModel checks every feature and product of a model, along with
// id uniqueness and credit schema references across the model.
func ValidateModel(m PricingModel) error {
	var problems []string

	if err := validatorInstance().Struct(m); err != nil {
		var verr *ValidationError
		if errors.As(wrapValidation(err), &verr) {
			problems = append(problems, verr.Problems...)
		} else {
			return err
		}
	}

	featureTypes := make(map[string]FeatureType, len(m.Features))
	for _, f := range m.Features {
		if _, dup := featureTypes[f.ID]; dup && f.ID != "" {
			problems = append(problems, fmt.Sprintf("features: duplicate id %q", f.ID))
		}
		featureTypes[f.ID] = f.Type
	}
	// Credits are drawn only by single_use features of the same model.
	for _, f := range m.Features {
		for _, entry := range f.CreditSchema {
			ref := entry.MeteredFeatureID
			if ref == f.ID {
				continue
			}
			typ, ok := featureTypes[ref]
			switch {
			case !ok:
				problems = append(problems, fmt.Sprintf("features: credit schema of %q references unknown feature %q", f.ID, ref))
			case typ != FeatureSingleUse:
				problems = append(problems, fmt.Sprintf("features: credit schema of %q references %q, which is not a single_use feature", f.ID, ref))
			}
		}
	}
	productIDs := make(map[string]struct{}, len(m.Products))
	for _, p := range m.Products {
		if _, dup := productIDs[p.ID]; dup && p.ID != "" {
			problems = append(problems, fmt.Sprintf("products: duplicate id %q", p.ID))
		}
		productIDs[p.ID] = struct{}{}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return &ValidationError{Problems: problems}
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "feature_or_price":
		return "item needs a feature_id, a price, or both"
	case "unique_feature":
		return fmt.Sprintf("%s: feature %q appears more than once", field, fe.Param())
	case "self_reference":
		return fmt.Sprintf("%s: feature %q references itself", field, fe.Param())
	case "credit_system_only":
		return field + " is only allowed on credit_system features"
	case "feature_type", "interval", "usage_model":
		return fmt.Sprintf("%s: %v is not a valid %s", field, fe.Value(), fe.Tag())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s must satisfy %s", field, fe.Tag())
	}
}
