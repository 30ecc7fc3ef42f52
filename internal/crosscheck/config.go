package crosscheck

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/tryalma/doccheck/internal/model"
)

// ConfidenceConfig holds the per-scenario confidence constants and the
// document-level weighting.
type ConfidenceConfig struct {
	// Agreement is assigned when both sources agree after normalization.
	Agreement float64 `yaml:"agreement" mapstructure:"agreement"`
	// DisagreementBase is assigned when both sources produced a value and
	// those values differ. Disagreement never yields high confidence no
	// matter which value is recommended.
	DisagreementBase float64 `yaml:"disagreement_base" mapstructure:"disagreement_base"`
	// SingleSourceDeterministic applies when only the check-digit-validated
	// source produced the field.
	SingleSourceDeterministic float64 `yaml:"single_source_deterministic" mapstructure:"single_source_deterministic"`
	// SingleSourceProbabilistic applies when only the vision source produced
	// the field.
	SingleSourceProbabilistic float64 `yaml:"single_source_probabilistic" mapstructure:"single_source_probabilistic"`
	// CriticalFieldWeight and StandardFieldWeight set the weighted mean used
	// for document confidence.
	CriticalFieldWeight float64 `yaml:"critical_field_weight" mapstructure:"critical_field_weight"`
	StandardFieldWeight float64 `yaml:"standard_field_weight" mapstructure:"standard_field_weight"`
}

// Config configures one Orchestrator. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// TimeoutA bounds the deterministic source, TimeoutB the probabilistic
	// one. They differ by default because MRZ decoding is typically much
	// faster than a vision-model round trip.
	TimeoutA time.Duration `yaml:"timeout_a" mapstructure:"timeout_a"`
	TimeoutB time.Duration `yaml:"timeout_b" mapstructure:"timeout_b"`

	Confidence ConfidenceConfig `yaml:"confidence" mapstructure:"confidence"`

	// Fields is the per-field rule table. Nil falls back to
	// model.DefaultFieldTable at construction.
	Fields *model.FieldTable `yaml:"-" mapstructure:"-"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		TimeoutA: 30 * time.Second,
		TimeoutB: 60 * time.Second,
		Confidence: ConfidenceConfig{
			Agreement:                 1.0,
			DisagreementBase:          0.4,
			SingleSourceDeterministic: 0.7,
			SingleSourceProbabilistic: 0.5,
			CriticalFieldWeight:       2.0,
			StandardFieldWeight:       1.0,
		},
	}
}

// Validate rejects configuration that indicates a deployment mistake. This
// is the only error class that aborts before extraction is attempted.
func (c Config) Validate() error {
	if c.TimeoutA <= 0 {
		return eris.New("crosscheck: timeout_a must be positive")
	}
	if c.TimeoutB <= 0 {
		return eris.New("crosscheck: timeout_b must be positive")
	}
	cc := c.Confidence
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"agreement", cc.Agreement},
		{"disagreement_base", cc.DisagreementBase},
		{"single_source_deterministic", cc.SingleSourceDeterministic},
		{"single_source_probabilistic", cc.SingleSourceProbabilistic},
	} {
		if v.value < 0 || v.value > 1 {
			return eris.Errorf("crosscheck: confidence %s must be in [0,1], got %g", v.name, v.value)
		}
	}
	if cc.CriticalFieldWeight <= 0 {
		return eris.New("crosscheck: critical_field_weight must be positive")
	}
	if cc.StandardFieldWeight <= 0 {
		return eris.New("crosscheck: standard_field_weight must be positive")
	}
	return nil
}
