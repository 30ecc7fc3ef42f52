// Package crosscheck reconciles two independently-fallible document
// extraction sources into a single confidence-scored record. The validator,
// scorer, and reporter are pure; the orchestrator owns all concurrency.
package crosscheck

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tryalma/doccheck/internal/extract"
	"github.com/tryalma/doccheck/internal/model"
)

// Orchestrator drives the two extraction calls concurrently under
// independent timeouts, tolerates either failing, and assembles the unified
// result. One instance is safe for concurrent Run calls; it holds no state
// across invocations.
type Orchestrator struct {
	cfg       Config
	sourceA   extract.Source // deterministic (MRZ/OCR)
	sourceB   extract.Source // probabilistic (vision model)
	validator *Validator
	scorer    *Scorer
	reporter  *Reporter
}

// New validates the configuration and wires the pipeline. Configuration
// errors and a fully unconfigured source pair are the only failures that
// surface as errors; everything at run time is captured into the result.
func New(deterministic, probabilistic extract.Source, cfg Config) (*Orchestrator, error) {
	if deterministic == nil && probabilistic == nil {
		return nil, eris.New("crosscheck: no extraction sources configured")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Fields == nil {
		cfg.Fields = model.DefaultFieldTable()
	}
	reporter := NewReporter(cfg.Fields)
	return &Orchestrator{
		cfg:       cfg,
		sourceA:   deterministic,
		sourceB:   probabilistic,
		validator: NewValidator(cfg.Fields, reporter),
		scorer:    NewScorer(cfg.Confidence, cfg.Fields),
		reporter:  reporter,
	}, nil
}

// outcome is the terminal state of one extraction call.
type outcome struct {
	fields   model.FieldSet
	err      string
	timedOut bool
	duration time.Duration
}

func (o outcome) ok() bool { return o.err == "" }

// errKind classifies the failure; empty when the call succeeded.
func (o outcome) errKind() model.SourceErrorKind {
	switch {
	case o.err == "":
		return ""
	case o.timedOut:
		return model.ErrorKindTimeout
	default:
		return model.ErrorKindFailure
	}
}

// Run extracts from both sources concurrently and cross-validates. It never
// returns an error for a source failure; all such outcomes are expressed
// through the result's status and error fields. The call blocks no longer
// than the larger of the two configured timeouts plus assembly time.
func (o *Orchestrator) Run(ctx context.Context, input extract.Input) model.CrossCheckResult {
	start := time.Now()
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID), zap.String("image", input.ImagePath))

	var outA, outB outcome
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		outA = o.runSource(ctx, o.sourceA, o.cfg.TimeoutA, input)
	}()
	go func() {
		defer wg.Done()
		outB = o.runSource(ctx, o.sourceB, o.cfg.TimeoutB, input)
	}()
	wg.Wait()

	result := o.assemble(runID, outA, outB)
	result.Timing = model.Timing{
		SourceA: outA.duration,
		SourceB: outB.duration,
		Total:   time.Since(start),
	}

	log.Info("cross-check complete",
		zap.String("status", string(result.Status)),
		zap.Strings("sources_used", result.SourcesUsed),
		zap.Int("fields", len(result.MergedFields)),
		zap.Int("discrepancies", len(result.Discrepancies)),
		zap.Float64("document_confidence", result.DocumentConfidence),
		zap.Duration("elapsed", result.Timing.Total),
	)
	return result
}

// runSource drives one extraction call to a terminal state under its own
// timeout. On timeout the in-flight call is abandoned, not awaited; its
// context is cancelled and its eventual return is discarded.
func (o *Orchestrator) runSource(ctx context.Context, src extract.Source, timeout time.Duration, input extract.Input) outcome {
	if src == nil {
		return outcome{err: "source not configured"}
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type reply struct {
		fields model.FieldSet
		err    error
	}
	ch := make(chan reply, 1)
	start := time.Now()
	go func() {
		fields, err := src.Extract(cctx, input)
		ch <- reply{fields: fields, err: err}
	}()

	select {
	case r := <-ch:
		d := time.Since(start)
		if r.err != nil {
			// A deadline or cancellation observed inside the source is
			// classified the same as one observed out here.
			if ctx.Err() != nil {
				return outcome{err: fmt.Sprintf("%s extraction cancelled: %v", src.Name(), ctx.Err()), duration: d}
			}
			if cctx.Err() == context.DeadlineExceeded {
				return outcome{err: timeoutMessage(src, timeout), timedOut: true, duration: d}
			}
			return outcome{err: fmt.Sprintf("%s extraction failed: %v", src.Name(), r.err), duration: d}
		}
		if len(r.fields) == 0 {
			return outcome{err: fmt.Sprintf("%s extraction returned no fields", src.Name()), duration: d}
		}
		return outcome{fields: r.fields, duration: d}
	case <-cctx.Done():
		d := time.Since(start)
		if ctx.Err() != nil {
			return outcome{err: fmt.Sprintf("%s extraction cancelled: %v", src.Name(), ctx.Err()), duration: d}
		}
		return outcome{err: timeoutMessage(src, timeout), timedOut: true, duration: d}
	}
}

func timeoutMessage(src extract.Source, timeout time.Duration) string {
	return fmt.Sprintf("%s extraction timed out after %s", src.Name(), timeout)
}

// assemble turns the two terminal outcomes into the unified result.
func (o *Orchestrator) assemble(runID string, outA, outB outcome) model.CrossCheckResult {
	result := model.CrossCheckResult{
		RunID:         runID,
		MergedFields:  model.FieldSet{},
		Discrepancies: []model.FieldDiscrepancy{},
		SourcesUsed:   []string{},
		Errors: model.SourceErrors{
			SourceA:     outA.err,
			SourceAKind: outA.errKind(),
			SourceB:     outB.err,
			SourceBKind: outB.errKind(),
		},
	}
	if outA.ok() {
		result.SourcesUsed = append(result.SourcesUsed, o.sourceA.Name())
	}
	if outB.ok() {
		result.SourcesUsed = append(result.SourcesUsed, o.sourceB.Name())
	}

	switch {
	case outA.ok() && outB.ok():
		result.Status = model.StatusSuccess
		validations, warnings := o.validator.CrossValidate(outA.fields, outB.fields)
		result.Warnings = warnings
		for _, v := range validations {
			result.MergedFields[v.FieldName] = v.FinalValue
		}
		result.FieldConfidences = o.scorer.Score(validations)
		if ds := o.reporter.Collect(validations); ds != nil {
			result.Discrepancies = ds
		}

	case outA.ok() || outB.ok():
		// Nothing to compare against: skip cross-validation and score every
		// surviving field with the single-source rule.
		result.Status = model.StatusPartial
		fields := outA.fields
		deterministic := true
		if outB.ok() {
			fields = outB.fields
			deterministic = false
		}
		result.MergedFields = fields.Clone()
		result.FieldConfidences = o.scorer.SingleSourceSet(fields, deterministic)

	default:
		result.Status = model.StatusError
		result.FieldConfidences = model.ConfidenceSet{}
	}

	result.DocumentConfidence = o.scorer.DocumentConfidence(result.FieldConfidences)
	return result
}
