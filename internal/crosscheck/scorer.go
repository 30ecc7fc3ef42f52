package crosscheck

import (
	"math"

	"github.com/tryalma/doccheck/internal/model"
)

// Scorer converts validation outcomes into numeric trust signals. Stateless
// and reentrant.
type Scorer struct {
	cfg    ConfidenceConfig
	fields *model.FieldTable
}

// NewScorer builds a scorer from the confidence constants and field table.
func NewScorer(cfg ConfidenceConfig, fields *model.FieldTable) *Scorer {
	return &Scorer{cfg: cfg, fields: fields}
}

// FieldConfidence scores a single validation result. Agreement scores the
// configured maximum; disagreement scores the base regardless of which value
// was recommended, because extraction is demonstrably unreliable on that
// field; single-source scores by which source supplied the value.
func (s *Scorer) FieldConfidence(r model.FieldValidationResult) float64 {
	var c float64
	switch r.Agreement {
	case model.AgreementAgreed:
		c = s.cfg.Agreement
	case model.AgreementDisagreed:
		c = s.cfg.DisagreementBase
	case model.AgreementSingleSource:
		if r.SourceAValue != "" {
			c = s.cfg.SingleSourceDeterministic
		} else {
			c = s.cfg.SingleSourceProbabilistic
		}
	}
	return clamp(c)
}

// Score builds the full ConfidenceSet for a validated record.
func (s *Scorer) Score(results []model.FieldValidationResult) model.ConfidenceSet {
	set := make(model.ConfidenceSet, len(results))
	for _, r := range results {
		set[r.FieldName] = s.FieldConfidence(r)
	}
	return set
}

// SingleSourceSet scores every field of one surviving source when the other
// source failed outright and there was nothing to cross-validate.
func (s *Scorer) SingleSourceSet(fields model.FieldSet, deterministic bool) model.ConfidenceSet {
	c := s.cfg.SingleSourceProbabilistic
	if deterministic {
		c = s.cfg.SingleSourceDeterministic
	}
	c = clamp(c)
	set := make(model.ConfidenceSet, len(fields))
	for _, name := range fields.Names() {
		set[name] = c
	}
	return set
}

// DocumentConfidence is the weighted mean of the per-field confidences, with
// critical fields weighted higher. Returns 0 for an empty set.
func (s *Scorer) DocumentConfidence(set model.ConfidenceSet) float64 {
	if len(set) == 0 {
		return 0
	}
	var weighted, total float64
	for name, c := range set {
		w := s.cfg.StandardFieldWeight
		if s.fields.Spec(name).Critical {
			w = s.cfg.CriticalFieldWeight
		}
		weighted += clamp(c) * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return clamp(weighted / total)
}

// clamp bounds a confidence to [0,1] and maps NaN to 0.
func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
