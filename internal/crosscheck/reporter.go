package crosscheck

import (
	"fmt"

	"github.com/tryalma/doccheck/internal/model"
)

// Reporter classifies disagreements and recommends which value to trust.
// Severity is a static lookup by field name; the business risk of a wrong
// document number is categorically different from a wrong place of birth,
// and that ranking does not depend on the data.
type Reporter struct {
	fields *model.FieldTable
}

// NewReporter builds a reporter over the given field table.
func NewReporter(fields *model.FieldTable) *Reporter {
	return &Reporter{fields: fields}
}

// CreateDiscrepancy records a disagreement between two present values and
// applies the source-preference rule to recommend one of them.
func (r *Reporter) CreateDiscrepancy(name, valueA, valueB string) model.FieldDiscrepancy {
	recommended, reason := r.Recommend(name, valueA, valueB)
	return model.FieldDiscrepancy{
		FieldName:        name,
		ValueA:           valueA,
		ValueB:           valueB,
		RecommendedValue: recommended,
		Severity:         r.fields.Spec(name).Severity,
		Reason:           reason,
	}
}

// Recommend picks a value by the per-field source preference. Fields with no
// preference take whichever source supplied a value, with the deterministic
// source winning a true tie.
func (r *Reporter) Recommend(name, valueA, valueB string) (value, reason string) {
	switch {
	case valueA == "" && valueB == "":
		return "", fmt.Sprintf("neither source produced %s", name)
	case valueB == "":
		return valueA, fmt.Sprintf("only the deterministic source produced %s", name)
	case valueA == "":
		return valueB, fmt.Sprintf("only the vision source produced %s", name)
	}

	switch r.fields.Spec(name).Preference {
	case model.PreferDeterministic:
		return valueA, fmt.Sprintf("deterministic source preferred for %s: check-digit-validated data", name)
	case model.PreferProbabilistic:
		return valueB, fmt.Sprintf("vision source preferred for %s: preserves diacritics and free text", name)
	default:
		return valueA, fmt.Sprintf("no preference for %s: defaulting to the deterministic source", name)
	}
}

// Collect extracts the discrepancies from a set of validation results. The
// slice is empty, never nil with entries, when all fields agreed.
func (r *Reporter) Collect(results []model.FieldValidationResult) []model.FieldDiscrepancy {
	var out []model.FieldDiscrepancy
	for _, res := range results {
		if res.Discrepancy != nil {
			out = append(out, *res.Discrepancy)
		}
	}
	return out
}
