package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tryalma/doccheck/internal/crosscheck"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "tesseract", cfg.MRZ.TesseractPath)
	assert.Equal(t, "anthropic", cfg.Vision.Provider)
	assert.EqualValues(t, 1024, cfg.Vision.MaxTokens)
	assert.InDelta(t, 30, cfg.Vision.RequestsPerMinute, 1e-9)
	assert.Equal(t, 30, cfg.CrossCheck.MRZTimeoutSecs)
	assert.Equal(t, 60, cfg.CrossCheck.VisionTimeoutSecs)
	assert.True(t, cfg.FormFill.Headless)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DOCCHECK_SERVER_PORT", "9999")
	t.Setenv("DOCCHECK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestCrossCheckConfig_Engine(t *testing.T) {
	c := CrossCheckConfig{
		MRZTimeoutSecs:    10,
		VisionTimeoutSecs: 45,
		Confidence: crosscheck.ConfidenceConfig{
			Agreement:                 0.9,
			DisagreementBase:          0.3,
			SingleSourceDeterministic: 0.6,
			SingleSourceProbabilistic: 0.4,
			CriticalFieldWeight:       3,
			StandardFieldWeight:       1,
		},
	}

	engine := c.Engine()
	require.NoError(t, engine.Validate())
	assert.Equal(t, 10*time.Second, engine.TimeoutA)
	assert.Equal(t, 45*time.Second, engine.TimeoutB)
	assert.InDelta(t, 0.9, engine.Confidence.Agreement, 1e-9)
}

func TestCrossCheckConfig_Engine_ZeroFallsBackToDefaults(t *testing.T) {
	engine := CrossCheckConfig{}.Engine()
	def := crosscheck.DefaultConfig()
	assert.Equal(t, def.TimeoutA, engine.TimeoutA)
	assert.Equal(t, def.TimeoutB, engine.TimeoutB)
	assert.Equal(t, def.Confidence, engine.Confidence)
}

func TestInitLogger_RejectsBadLevel(t *testing.T) {
	assert.Error(t, InitLogger(LogConfig{Level: "shout", Format: "json"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "console"}))
}
