package crosscheck

import (
	"fmt"

	"github.com/tryalma/doccheck/internal/model"
	"github.com/tryalma/doccheck/internal/normalize"
)

// Validator compares a full record between two sources field by field. It is
// a pure function over its inputs: no I/O, no shared mutable state, safe to
// call from concurrent orchestrator instances.
type Validator struct {
	fields   *model.FieldTable
	reporter *Reporter
}

// NewValidator builds a validator over the given field table.
func NewValidator(fields *model.FieldTable, reporter *Reporter) *Validator {
	return &Validator{fields: fields, reporter: reporter}
}

// CrossValidate produces one FieldValidationResult per field name in the
// union of both sources, in sorted field-name order. Fields absent from both
// sources are omitted entirely. Warnings carry field-level normalization
// failures; they never abort the run.
func (v *Validator) CrossValidate(sourceA, sourceB model.FieldSet) (results []model.FieldValidationResult, warnings []string) {
	for _, name := range model.UnionNames(sourceA, sourceB) {
		rawA, okA := sourceA.Get(name)
		rawB, okB := sourceB.Get(name)

		// Single-source: use the value as-is. Not agreement, not a
		// discrepancy — there was nothing to compare against.
		if okA != okB {
			final := rawA
			if okB {
				final = rawB
			}
			results = append(results, model.FieldValidationResult{
				FieldName:    name,
				SourceAValue: rawA,
				SourceBValue: rawB,
				Agreement:    model.AgreementSingleSource,
				FinalValue:   final,
			})
			continue
		}

		normA, warnA := v.normalizeValue(name, rawA)
		normB, warnB := v.normalizeValue(name, rawB)
		warnings = append(warnings, warnA...)
		warnings = append(warnings, warnB...)

		if normA == normB {
			results = append(results, model.FieldValidationResult{
				FieldName:    name,
				SourceAValue: rawA,
				SourceBValue: rawB,
				Agreement:    model.AgreementAgreed,
				FinalValue:   v.preferredOriginal(name, rawA, rawB),
			})
			continue
		}

		d := v.reporter.CreateDiscrepancy(name, rawA, rawB)
		results = append(results, model.FieldValidationResult{
			FieldName:    name,
			SourceAValue: rawA,
			SourceBValue: rawB,
			Agreement:    model.AgreementDisagreed,
			FinalValue:   d.RecommendedValue,
			Discrepancy:  &d,
		})
	}
	return results, warnings
}

// normalizeValue applies the field-kind normalizer. A malformed date is a
// field-level warning, and comparison falls back to the text-normalized raw
// value so the run keeps the data instead of dropping it.
func (v *Validator) normalizeValue(name, raw string) (string, []string) {
	spec := v.fields.Spec(name)
	switch spec.Kind {
	case model.KindDate:
		iso, err := normalize.Date(raw)
		if err != nil {
			return normalize.Text(raw), []string{
				fmt.Sprintf("%s: unparseable date %q, compared as text", name, raw),
			}
		}
		return iso, nil
	case model.KindCode:
		return normalize.Code(raw), nil
	default:
		return normalize.Text(raw), nil
	}
}

// preferredOriginal picks which source's unnormalized value survives into
// merged output when the sources agree. The normalized forms are equal; the
// preference only decides whose casing and diacritics are preserved.
func (v *Validator) preferredOriginal(name, rawA, rawB string) string {
	if v.fields.Spec(name).Preference == model.PreferProbabilistic {
		return rawB
	}
	return rawA
}
