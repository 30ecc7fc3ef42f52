// Package formfill drives a headless browser to populate a third-party web
// form from a merged extraction record. Field handlers mirror the control
// kinds the target form uses; population is best-effort per field, and the
// caller receives a full report rather than a first-error abort.
package formfill

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tryalma/doccheck/internal/model"
	"github.com/tryalma/doccheck/internal/normalize"
)

// Outcome is the per-field population result.
type Outcome struct {
	Field  string `json:"field"`
	Status string `json:"status"` // "populated", "skipped", "failed"
	Reason string `json:"reason,omitempty"`
}

// Report summarizes one population run.
type Report struct {
	URL       string    `json:"url"`
	Outcomes  []Outcome `json:"outcomes"`
	Populated int       `json:"populated"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
}

// Options configures the browser session.
type Options struct {
	Headless   bool
	NavTimeout time.Duration // whole-run budget; default 2 minutes
	FieldPause time.Duration // settle time after each control; default none
}

// Filler populates a mapped form from a FieldSet.
type Filler struct {
	opts Options
}

// NewFiller creates a Filler.
func NewFiller(opts Options) *Filler {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 2 * time.Minute
	}
	return &Filler{opts: opts}
}

// Populate opens the mapped form and fills every mapped field that has a
// value. Per-field failures are recorded and the run continues; only
// navigation-level failures return an error.
func (f *Filler) Populate(ctx context.Context, mapping *Mapping, fields model.FieldSet) (*Report, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	runCtx, cancel := context.WithTimeout(browserCtx, f.opts.NavTimeout)
	defer cancel()

	nav := []chromedp.Action{chromedp.Navigate(mapping.URL)}
	if mapping.ReadySelector != "" {
		nav = append(nav, chromedp.WaitVisible(mapping.ReadySelector, chromedp.ByQuery))
	}
	if err := chromedp.Run(runCtx, nav...); err != nil {
		return nil, eris.Wrapf(err, "formfill: navigate %s", mapping.URL)
	}

	report := &Report{URL: mapping.URL}
	for _, fm := range mapping.Fields {
		outcome := f.populateField(runCtx, fm, fields)
		report.Outcomes = append(report.Outcomes, outcome)
		switch outcome.Status {
		case "populated":
			report.Populated++
		case "skipped":
			report.Skipped++
		default:
			report.Failed++
		}
		if f.opts.FieldPause > 0 {
			select {
			case <-time.After(f.opts.FieldPause):
			case <-runCtx.Done():
			}
		}
	}

	zap.L().Info("form population complete",
		zap.String("url", mapping.URL),
		zap.Int("populated", report.Populated),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (f *Filler) populateField(ctx context.Context, fm FieldMapping, fields model.FieldSet) Outcome {
	value, ok := fields.Get(fm.Field)
	if !ok {
		if fm.Required {
			return Outcome{Field: fm.Field, Status: "failed", Reason: "required field missing from record"}
		}
		return Outcome{Field: fm.Field, Status: "skipped", Reason: "no value in record"}
	}

	action, err := f.actionFor(fm, value)
	if err != nil {
		return Outcome{Field: fm.Field, Status: "failed", Reason: err.Error()}
	}
	if err := chromedp.Run(ctx, action...); err != nil {
		return Outcome{Field: fm.Field, Status: "failed", Reason: err.Error()}
	}
	return Outcome{Field: fm.Field, Status: "populated"}
}

// actionFor builds the chromedp actions for one control.
func (f *Filler) actionFor(fm FieldMapping, value string) ([]chromedp.Action, error) {
	switch fm.Kind {
	case ControlText:
		return []chromedp.Action{
			chromedp.WaitVisible(fm.Selector, chromedp.ByQuery),
			chromedp.Clear(fm.Selector, chromedp.ByQuery),
			chromedp.SendKeys(fm.Selector, value, chromedp.ByQuery),
		}, nil

	case ControlSelect:
		return []chromedp.Action{
			chromedp.WaitVisible(fm.Selector, chromedp.ByQuery),
			chromedp.SetValue(fm.Selector, value, chromedp.ByQuery),
		}, nil

	case ControlRadio:
		selector := fm.Selector
		if strings.Contains(selector, "%s") {
			selector = fmt.Sprintf(selector, strings.ToLower(value))
		}
		return []chromedp.Action{
			chromedp.WaitVisible(selector, chromedp.ByQuery),
			chromedp.Click(selector, chromedp.ByQuery),
		}, nil

	case ControlCheckbox:
		if !truthy(value) {
			return []chromedp.Action{}, nil
		}
		return []chromedp.Action{
			chromedp.WaitVisible(fm.Selector, chromedp.ByQuery),
			chromedp.Click(fm.Selector, chromedp.ByQuery),
		}, nil

	case ControlDate:
		iso, err := normalize.Date(value)
		if err != nil {
			return nil, eris.Wrapf(err, "formfill: %s", fm.Field)
		}
		t, err := time.Parse("2006-01-02", iso)
		if err != nil {
			return nil, eris.Wrapf(err, "formfill: %s", fm.Field)
		}
		return []chromedp.Action{
			chromedp.WaitVisible(fm.Selector, chromedp.ByQuery),
			chromedp.Clear(fm.Selector, chromedp.ByQuery),
			chromedp.SendKeys(fm.Selector, t.Format(fm.Format), chromedp.ByQuery),
		}, nil
	}
	return nil, eris.Errorf("formfill: unhandled control kind %q", fm.Kind)
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "y", "1", "on", "checked":
		return true
	}
	return false
}
