package checks

import (
	"errors"
	"fmt"

	"pricing-modeller/core/pricing"
)

// Severity grades an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Check names.
const (
	CheckFeatureRecord    = "feature_record"
	CheckProductRecord    = "product_record"
	CheckDuplicateFeature = "duplicate_feature_id"
	CheckDuplicateProduct = "duplicate_product_id"
	CheckCreditReference  = "credit_reference"
	CheckCreditSelf       = "credit_self_reference"
	CheckItemReference    = "item_reference"
	CheckDuplicateItem    = "duplicate_item_feature"
	CheckFlatPrices       = "multiple_flat_prices"
)

// Issue is one finding about a model.
type Issue struct {
	Severity Severity `json:"severity"`
	Check    string   `json:"check"`
	Subject  string   `json:"subject"`
	Message  string   `json:"message"`
}

// Report lists the issues found in a model. OK is false when any issue is
// an error.
type Report struct {
	Issues []Issue `json:"issues"`
	OK     bool    `json:"ok"`
}

func (r *Report) add(sev Severity, check, subject, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Severity: sev,
		Check:    check,
		Subject:  subject,
		Message:  fmt.Sprintf(format, args...),
	})
	if sev == SeverityError {
		r.OK = false
	}
}

// CheckModel runs every cross-record check on a model. The merge keeps
// each record valid on its own; these checks cover what only the whole
// model can show.
func CheckModel(m pricing.PricingModel) Report {
	report := Report{Issues: []Issue{}, OK: true}

	features := checkFeatures(&report, m.Features)
	checkProducts(&report, m.Products, features)

	return report
}

func checkFeatures(report *Report, list []pricing.Feature) map[string]pricing.Feature {
	features := make(map[string]pricing.Feature, len(list))
	for _, f := range list {
		if _, dup := features[f.ID]; dup {
			report.add(SeverityError, CheckDuplicateFeature, f.ID, "feature id %q is used more than once", f.ID)
			continue
		}
		features[f.ID] = f
	}

	for _, f := range list {
		if err := pricing.ValidateFeature(f); err != nil {
			report.add(SeverityError, CheckFeatureRecord, f.ID, "%s", problems(err))
		}

		for _, entry := range f.CreditSchema {
			ref := entry.MeteredFeatureID
			switch target, ok := features[ref]; {
			case ref == f.ID:
				report.add(SeverityError, CheckCreditSelf, f.ID, "credit schema of %q references itself", f.ID)
			case !ok:
				report.add(SeverityError, CheckCreditReference, f.ID, "credit schema references unknown feature %q", ref)
			case target.Type != pricing.FeatureSingleUse:
				report.add(SeverityWarning, CheckCreditReference, f.ID,
					"credit schema references %q, a %s feature; only single_use features draw credits", ref, target.Type)
			}
		}
	}
	return features
}

func checkProducts(report *Report, list []pricing.Product, features map[string]pricing.Feature) {
	seen := make(map[string]struct{}, len(list))
	for _, p := range list {
		if _, dup := seen[p.ID]; dup {
			report.add(SeverityError, CheckDuplicateProduct, p.ID, "product id %q is used more than once", p.ID)
		}
		seen[p.ID] = struct{}{}

		if err := pricing.ValidateProduct(p); err != nil {
			report.add(SeverityError, CheckProductRecord, p.ID, "%s", problems(err))
		}

		flat := 0
		items := make(map[string]struct{}, len(p.Items))
		for _, item := range p.Items {
			if pricing.IsFlatPrice(item) {
				flat++
			}
			if item.FeatureID == nil {
				continue
			}
			id := *item.FeatureID
			if _, ok := features[id]; !ok {
				report.add(SeverityError, CheckItemReference, p.ID, "item references unknown feature %q", id)
			}
			if _, dup := items[id]; dup {
				report.add(SeverityError, CheckDuplicateItem, p.ID, "feature %q appears in more than one item", id)
			}
			items[id] = struct{}{}
		}
		if flat > 1 {
			report.add(SeverityWarning, CheckFlatPrices, p.ID, "%d flat prices; only the first is shown as the headline", flat)
		}
	}
}

func problems(err error) string {
	var verr *pricing.ValidationError
	if errors.As(err, &verr) && len(verr.Problems) > 0 {
		msg := verr.Problems[0]
		for _, p := range verr.Problems[1:] {
			msg += "; " + p
		}
		return msg
	}
	return err.Error()
}
