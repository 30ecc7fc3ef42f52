package model

import (
	"encoding/json"
	"time"
)

// Status is the terminal outcome of one cross-check invocation.
type Status string

const (
	StatusSuccess Status = "success" // both sources contributed
	StatusPartial Status = "partial" // exactly one source contributed
	StatusError   Status = "error"   // neither source contributed
)

// Severity classifies the business risk of a field discrepancy.
type Severity string

const (
	SeverityCritical      Severity = "critical"
	SeverityWarning       Severity = "warning"
	SeverityInformational Severity = "informational"
)

// Agreement is the tri-state outcome of comparing one field between two
// sources. Single-source is deliberately distinct from agreement: absence of
// disagreement is not presence of agreement.
type Agreement string

const (
	AgreementAgreed       Agreement = "agreed"
	AgreementDisagreed    Agreement = "disagreed"
	AgreementSingleSource Agreement = "single_source"
)

// FieldDiscrepancy records a field for which both sources produced a value
// and the normalized values differ.
type FieldDiscrepancy struct {
	FieldName        string   `json:"field_name"`
	ValueA           string   `json:"value_a"`
	ValueB           string   `json:"value_b"`
	RecommendedValue string   `json:"recommended_value"`
	Severity         Severity `json:"severity"`
	Reason           string   `json:"reason"`
}

// FieldValidationResult is the comparison outcome for one field name present
// in either source.
//
// Invariant: Agreement == AgreementAgreed implies Discrepancy == nil and the
// two source values are equal after normalization.
type FieldValidationResult struct {
	FieldName    string
	SourceAValue string // raw value as source A reported it; empty if absent
	SourceBValue string
	Agreement    Agreement
	FinalValue   string
	Discrepancy  *FieldDiscrepancy // non-nil only when Agreement == AgreementDisagreed
}

// Agreed reports whether both sources produced the field and matched after
// normalization.
func (r FieldValidationResult) Agreed() bool {
	return r.Agreement == AgreementAgreed
}

// ConfidenceSet maps field names to confidence in [0.0, 1.0]. Fields absent
// from both sources have no entry: zero would imply "checked and wrong".
type ConfidenceSet map[string]float64

// SourceErrorKind classifies a source failure so callers can tell a broken
// source from a slow one without parsing message text.
type SourceErrorKind string

const (
	ErrorKindFailure SourceErrorKind = "failure"
	ErrorKindTimeout SourceErrorKind = "timeout"
)

// SourceErrors carries the per-source failure reasons and kinds, if any.
// A kind is set exactly when its message is.
type SourceErrors struct {
	SourceA     string          `json:"source_a,omitempty"`
	SourceAKind SourceErrorKind `json:"source_a_kind,omitempty"`
	SourceB     string          `json:"source_b,omitempty"`
	SourceBKind SourceErrorKind `json:"source_b_kind,omitempty"`
}

// Timing records per-source and total wall-clock durations.
type Timing struct {
	SourceA time.Duration `json:"-"`
	SourceB time.Duration `json:"-"`
	Total   time.Duration `json:"-"`
}

// MarshalJSON emits durations as integer milliseconds.
func (t Timing) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SourceA int64 `json:"source_a_ms"`
		SourceB int64 `json:"source_b_ms"`
		Total   int64 `json:"total_ms"`
	}{
		SourceA: t.SourceA.Milliseconds(),
		SourceB: t.SourceB.Milliseconds(),
		Total:   t.Total.Milliseconds(),
	})
}

// CrossCheckResult is the aggregate outcome of one cross-check invocation.
// It is constructed once, immutable after construction, and never persisted.
type CrossCheckResult struct {
	RunID              string             `json:"run_id"`
	Status             Status             `json:"status"`
	MergedFields       FieldSet           `json:"merged_fields"`
	FieldConfidences   ConfidenceSet      `json:"field_confidences"`
	DocumentConfidence float64            `json:"document_confidence"`
	Discrepancies      []FieldDiscrepancy `json:"discrepancies"`
	SourcesUsed        []string           `json:"sources_used"`
	Errors             SourceErrors       `json:"errors"`
	Warnings           []string           `json:"warnings,omitempty"`
	Timing             Timing             `json:"timing"`
}

// HasDiscrepancies reports whether any field disagreed between sources.
func (r *CrossCheckResult) HasDiscrepancies() bool {
	return len(r.Discrepancies) > 0
}

// CriticalDiscrepancies returns only the critical-severity discrepancies.
func (r *CrossCheckResult) CriticalDiscrepancies() []FieldDiscrepancy {
	var out []FieldDiscrepancy
	for _, d := range r.Discrepancies {
		if d.Severity == SeverityCritical {
			out = append(out, d)
		}
	}
	return out
}
