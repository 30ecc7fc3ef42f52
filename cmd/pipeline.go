package main

import (
	"github.com/tryalma/doccheck/internal/crosscheck"
	"github.com/tryalma/doccheck/internal/mrz"
	"github.com/tryalma/doccheck/internal/vision"
)

// buildOrchestrator wires both extraction sources and the cross-check
// engine from loaded config.
func buildOrchestrator() (*crosscheck.Orchestrator, error) {
	mrzSource := mrz.NewSource(mrz.NewDecoder(cfg.MRZ.TesseractPath))

	provider, err := vision.NewProvider(cfg.Vision)
	if err != nil {
		return nil, err
	}
	visionSource := vision.NewSource(provider, cfg.Vision.RequestsPerMinute)

	return crosscheck.New(mrzSource, visionSource, cfg.CrossCheck.Engine())
}

// buildVisionProvider wires only the vision backend, for vision-only flows
// like G-28 parsing.
func buildVisionProvider() (vision.Provider, error) {
	return vision.NewProvider(cfg.Vision)
}
