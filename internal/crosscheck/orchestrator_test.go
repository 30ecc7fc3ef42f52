package crosscheck

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tryalma/doccheck/internal/extract"
	"github.com/tryalma/doccheck/internal/model"
)

// stubSource is a canned extraction backend for orchestrator tests.
type stubSource struct {
	name   string
	fields model.FieldSet
	err    error
	delay  time.Duration
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Extract(ctx context.Context, _ extract.Input) (model.FieldSet, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.fields, s.err
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.TimeoutA = 2 * time.Second
	cfg.TimeoutB = 2 * time.Second
	return cfg
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, nil, testConfig())
	assert.Error(t, err, "at least one source is required")

	bad := testConfig()
	bad.TimeoutA = 0
	_, err = New(&stubSource{name: "mrz"}, nil, bad)
	assert.Error(t, err)

	orch, err := New(&stubSource{name: "mrz"}, nil, testConfig())
	require.NoError(t, err)
	assert.NotNil(t, orch)
}

func TestRun_BothSourcesAgree(t *testing.T) {
	a := &stubSource{name: "mrz", fields: model.FieldSet{
		model.FieldPassportNumber: "L898902C3",
		model.FieldDateOfBirth:    "740812",
		model.FieldSurname:        "ERIKSSON",
	}}
	b := &stubSource{name: "vision", fields: model.FieldSet{
		model.FieldPassportNumber: "L898902C3",
		model.FieldDateOfBirth:    "1974-08-12",
		model.FieldSurname:        "Eriksson",
	}}
	orch, err := New(a, b, testConfig())
	require.NoError(t, err)

	result := orch.Run(context.Background(), extract.Input{ImagePath: "passport.jpg"})

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, []string{"mrz", "vision"}, result.SourcesUsed)
	assert.Empty(t, result.Discrepancies)
	assert.Empty(t, result.Errors.SourceA)
	assert.Empty(t, result.Errors.SourceB)

	assert.Equal(t, "L898902C3", result.MergedFields[model.FieldPassportNumber])
	assert.Equal(t, "Eriksson", result.MergedFields[model.FieldSurname], "name fields keep the vision rendering")

	for name, c := range result.FieldConfidences {
		assert.InDelta(t, 1.0, c, 1e-9, name)
	}
	assert.InDelta(t, 1.0, result.DocumentConfidence, 1e-9)
}

func TestRun_CriticalDiscrepancy(t *testing.T) {
	a := &stubSource{name: "mrz", fields: model.FieldSet{
		model.FieldPassportNumber: "AB1234567",
		model.FieldSurname:        "ERIKSSON",
	}}
	b := &stubSource{name: "vision", fields: model.FieldSet{
		model.FieldPassportNumber: "AB1234561",
		model.FieldSurname:        "Eriksson",
	}}
	orch, err := New(a, b, testConfig())
	require.NoError(t, err)

	result := orch.Run(context.Background(), extract.Input{ImagePath: "passport.jpg"})

	assert.Equal(t, model.StatusSuccess, result.Status)
	require.Len(t, result.Discrepancies, 1)

	d := result.Discrepancies[0]
	assert.Equal(t, model.FieldPassportNumber, d.FieldName)
	assert.Equal(t, model.SeverityCritical, d.Severity)
	assert.Equal(t, "AB1234567", d.RecommendedValue)
	assert.Equal(t, "AB1234567", result.MergedFields[model.FieldPassportNumber])

	assert.InDelta(t, 0.4, result.FieldConfidences[model.FieldPassportNumber], 1e-9)
	assert.InDelta(t, 1.0, result.FieldConfidences[model.FieldSurname], 1e-9)
	assert.Less(t, result.DocumentConfidence, 1.0)

	require.Len(t, result.CriticalDiscrepancies(), 1)
}

func TestRun_PartialWhenVisionFails(t *testing.T) {
	a := &stubSource{name: "mrz", fields: model.FieldSet{
		model.FieldPassportNumber: "L898902C3",
		model.FieldSurname:        "ERIKSSON",
	}}
	b := &stubSource{name: "vision", err: errors.New("model unavailable")}
	orch, err := New(a, b, testConfig())
	require.NoError(t, err)

	result := orch.Run(context.Background(), extract.Input{ImagePath: "passport.jpg"})

	assert.Equal(t, model.StatusPartial, result.Status)
	assert.Equal(t, []string{"mrz"}, result.SourcesUsed)
	assert.Empty(t, result.Errors.SourceA)
	assert.Contains(t, result.Errors.SourceB, "model unavailable")
	assert.Empty(t, result.Discrepancies)

	assert.Equal(t, "L898902C3", result.MergedFields[model.FieldPassportNumber])
	for name, c := range result.FieldConfidences {
		assert.InDelta(t, 0.7, c, 1e-9, name)
	}
}

func TestRun_PartialWhenMRZFails(t *testing.T) {
	a := &stubSource{name: "mrz", err: errors.New("no machine-readable zone found")}
	b := &stubSource{name: "vision", fields: model.FieldSet{
		model.FieldSurname: "Eriksson",
	}}
	orch, err := New(a, b, testConfig())
	require.NoError(t, err)

	result := orch.Run(context.Background(), extract.Input{ImagePath: "passport.jpg"})

	assert.Equal(t, model.StatusPartial, result.Status)
	assert.Equal(t, []string{"vision"}, result.SourcesUsed)
	assert.InDelta(t, 0.5, result.FieldConfidences[model.FieldSurname], 1e-9)
}

func TestRun_ErrorWhenBothFail(t *testing.T) {
	a := &stubSource{name: "mrz", err: errors.New("ocr failed")}
	b := &stubSource{name: "vision", err: errors.New("model unavailable")}
	orch, err := New(a, b, testConfig())
	require.NoError(t, err)

	result := orch.Run(context.Background(), extract.Input{ImagePath: "passport.jpg"})

	assert.Equal(t, model.StatusError, result.Status)
	assert.Empty(t, result.SourcesUsed)
	assert.Empty(t, result.MergedFields)
	assert.Zero(t, result.DocumentConfidence)
	assert.Contains(t, result.Errors.SourceA, "ocr failed")
	assert.Contains(t, result.Errors.SourceB, "model unavailable")
	assert.Equal(t, model.ErrorKindFailure, result.Errors.SourceAKind)
	assert.Equal(t, model.ErrorKindFailure, result.Errors.SourceBKind)
}

func TestRun_EmptyFieldsIsAFailure(t *testing.T) {
	a := &stubSource{name: "mrz", fields: model.FieldSet{}}
	b := &stubSource{name: "vision", fields: model.FieldSet{model.FieldSurname: "Eriksson"}}
	orch, err := New(a, b, testConfig())
	require.NoError(t, err)

	result := orch.Run(context.Background(), extract.Input{ImagePath: "passport.jpg"})

	assert.Equal(t, model.StatusPartial, result.Status)
	assert.Contains(t, result.Errors.SourceA, "no fields")
}

func TestRun_SourceTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.TimeoutB = 50 * time.Millisecond

	a := &stubSource{name: "mrz", fields: model.FieldSet{model.FieldSurname: "ERIKSSON"}}
	b := &stubSource{name: "vision", delay: 2 * time.Second, fields: model.FieldSet{model.FieldSurname: "Eriksson"}}
	orch, err := New(a, b, cfg)
	require.NoError(t, err)

	start := time.Now()
	result := orch.Run(context.Background(), extract.Input{ImagePath: "passport.jpg"})

	assert.Less(t, time.Since(start), time.Second, "timed-out source must be abandoned, not awaited")
	assert.Equal(t, model.StatusPartial, result.Status)
	assert.Contains(t, result.Errors.SourceB, "timed out")
	assert.Equal(t, model.ErrorKindTimeout, result.Errors.SourceBKind)
	assert.Empty(t, result.Errors.SourceAKind, "successful source carries no error kind")
}

func TestRun_BothTimeoutsAreMachineReadable(t *testing.T) {
	cfg := testConfig()
	cfg.TimeoutA = 50 * time.Millisecond
	cfg.TimeoutB = 50 * time.Millisecond

	a := &stubSource{name: "mrz", delay: 2 * time.Second, fields: model.FieldSet{model.FieldSurname: "X"}}
	b := &stubSource{name: "vision", delay: 2 * time.Second, fields: model.FieldSet{model.FieldSurname: "X"}}
	orch, err := New(a, b, cfg)
	require.NoError(t, err)

	result := orch.Run(context.Background(), extract.Input{ImagePath: "passport.jpg"})

	assert.Equal(t, model.StatusError, result.Status)
	assert.Equal(t, model.ErrorKindTimeout, result.Errors.SourceAKind)
	assert.Equal(t, model.ErrorKindTimeout, result.Errors.SourceBKind)

	// The kind must survive into the wire form; callers filter on it
	// instead of matching message text.
	payload, err := json.Marshal(result.Errors)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"source_a_kind":"timeout"`)
	assert.Contains(t, string(payload), `"source_b_kind":"timeout"`)
}

func TestRun_ParentCancellation(t *testing.T) {
	a := &stubSource{name: "mrz", delay: 2 * time.Second, fields: model.FieldSet{model.FieldSurname: "X"}}
	b := &stubSource{name: "vision", delay: 2 * time.Second, fields: model.FieldSet{model.FieldSurname: "X"}}
	orch, err := New(a, b, testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	result := orch.Run(ctx, extract.Input{ImagePath: "passport.jpg"})

	assert.Equal(t, model.StatusError, result.Status)
	assert.Contains(t, result.Errors.SourceA, "cancelled")
	assert.Contains(t, result.Errors.SourceB, "cancelled")
}

func TestRun_UnknownFieldsFlowThrough(t *testing.T) {
	a := &stubSource{name: "mrz", fields: model.FieldSet{"optional_data": "X1"}}
	b := &stubSource{name: "vision", fields: model.FieldSet{"optional_data": "X2"}}
	orch, err := New(a, b, testConfig())
	require.NoError(t, err)

	result := orch.Run(context.Background(), extract.Input{ImagePath: "passport.jpg"})

	require.Len(t, result.Discrepancies, 1)
	assert.Equal(t, model.SeverityInformational, result.Discrepancies[0].Severity, "unmapped fields default to informational")
	assert.Equal(t, "X1", result.MergedFields["optional_data"])
}
