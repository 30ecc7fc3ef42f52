package crosscheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tryalma/doccheck/internal/model"
)

func newTestScorer() *Scorer {
	return NewScorer(DefaultConfig().Confidence, model.DefaultFieldTable())
}

func TestFieldConfidence(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		name   string
		result model.FieldValidationResult
		want   float64
	}{
		{
			"agreement",
			model.FieldValidationResult{Agreement: model.AgreementAgreed, SourceAValue: "x", SourceBValue: "x"},
			1.0,
		},
		{
			"disagreement",
			model.FieldValidationResult{Agreement: model.AgreementDisagreed, SourceAValue: "x", SourceBValue: "y"},
			0.4,
		},
		{
			"deterministic only",
			model.FieldValidationResult{Agreement: model.AgreementSingleSource, SourceAValue: "x"},
			0.7,
		},
		{
			"vision only",
			model.FieldValidationResult{Agreement: model.AgreementSingleSource, SourceBValue: "y"},
			0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.FieldConfidence(tt.result), 1e-9)
		})
	}
}

func TestScore(t *testing.T) {
	s := newTestScorer()
	set := s.Score([]model.FieldValidationResult{
		{FieldName: model.FieldSurname, Agreement: model.AgreementAgreed},
		{FieldName: model.FieldSex, Agreement: model.AgreementDisagreed},
	})
	require.Len(t, set, 2)
	assert.InDelta(t, 1.0, set[model.FieldSurname], 1e-9)
	assert.InDelta(t, 0.4, set[model.FieldSex], 1e-9)
}

func TestSingleSourceSet(t *testing.T) {
	s := newTestScorer()
	fields := model.FieldSet{
		model.FieldSurname:     "ERIKSSON",
		model.FieldNationality: "UTO",
	}

	det := s.SingleSourceSet(fields, true)
	require.Len(t, det, 2)
	for name, c := range det {
		assert.InDelta(t, 0.7, c, 1e-9, name)
	}

	vis := s.SingleSourceSet(fields, false)
	for name, c := range vis {
		assert.InDelta(t, 0.5, c, 1e-9, name)
	}
}

func TestDocumentConfidence_WeightsCriticalFields(t *testing.T) {
	s := newTestScorer()

	// surname is critical (weight 2), sex is not (weight 1):
	// (0.4*2 + 1.0*1) / 3 = 0.6
	set := model.ConfidenceSet{
		model.FieldSurname: 0.4,
		model.FieldSex:     1.0,
	}
	assert.InDelta(t, 0.6, s.DocumentConfidence(set), 1e-9)
}

func TestDocumentConfidence_Bounds(t *testing.T) {
	s := newTestScorer()

	assert.Zero(t, s.DocumentConfidence(nil))
	assert.Zero(t, s.DocumentConfidence(model.ConfidenceSet{}))

	uniform := model.ConfidenceSet{
		model.FieldSurname: 1.0,
		model.FieldSex:     1.0,
	}
	assert.InDelta(t, 1.0, s.DocumentConfidence(uniform), 1e-9)

	// Out-of-range inputs are clamped, never propagated.
	dirty := model.ConfidenceSet{model.FieldSex: 7.5}
	got := s.DocumentConfidence(dirty)
	assert.LessOrEqual(t, got, 1.0)
	assert.GreaterOrEqual(t, got, 0.0)
}
