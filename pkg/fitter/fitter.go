// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package fitter fits a repository-text dump within a bounded size budget.
//
// The subsystem is pure, synchronous text transformation: no I/O, no
// shared state beyond local accumulators. A Fitter is safe to use from
// multiple goroutines for independent inputs. It never fails on oversized
// or malformed input; it always degrades to a best-effort, structurally
// valid result.
package fitter

import (
	"github.com/cicd-ai-toolkit/contextfit/pkg/config"
	"github.com/cicd-ai-toolkit/contextfit/pkg/observability"
)

// Truncation aggressiveness tiers, chosen by how far the original content
// overshoots the context-token budget.
const (
	// baselineComfortRatio: baseline output at or under 80% of the
	// context window needs no aggressive work.
	baselineComfortRatio = 0.8
	// severeOverageRatio and moderateOverageRatio split the graduated
	// response: >1.5x over budget gets the aggressive target, >1.2x the
	// moderate one, anything else the conservative one.
	severeOverageRatio   = 1.5
	moderateOverageRatio = 1.2

	aggressiveTargetRatio   = 0.4
	moderateTargetRatio     = 0.6
	conservativeTargetRatio = 0.8
)

// Fitter applies budget-aware truncation and chunking to dump text.
type Fitter struct {
	cfg  config.BudgetConfig
	calc *Calculator
	log  observability.Logger
}

// New creates a Fitter. The config must already be validated.
func New(cfg config.BudgetConfig, log observability.Logger) *Fitter {
	if log == nil {
		log = observability.NewNop()
	}
	return &Fitter{
		cfg:  cfg,
		calc: NewCalculator(cfg),
		log:  log,
	}
}

// Calculator exposes the fitter's budget calculator.
func (f *Fitter) Calculator() *Calculator {
	return f.calc
}

// SmartFit reduces content to a single string within the context budget,
// choosing between cheap boundary truncation and graduated per-file line
// truncation based on how far over budget the input is.
func (f *Fitter) SmartFit(content string, priorityPaths []string) string {
	format := DetectFormat(content)
	if !format.Supported {
		f.log.Warn("unsupported dump format",
			observability.String("format", format.Name),
			observability.String("detail", format.Warning))
	}

	baseline := f.Truncate(content, f.cfg.MaxContentChars)
	baselineTokens := f.calc.EstimateTokens(baseline)

	// Cheap truncation suffices when the result sits comfortably inside
	// the window and priority handling would change nothing.
	comfortable := float64(baselineTokens) <= float64(f.cfg.MaxContextTokens)*baselineComfortRatio
	if comfortable && (len(priorityPaths) == 0 || len(baseline) == len(content)) {
		return baseline
	}

	// Graduated response keyed off the original content, not the baseline:
	// mildly oversized input should not be over-truncated.
	overage := float64(f.calc.EstimateTokens(content)) / float64(f.cfg.MaxContextTokens)
	var target int
	switch {
	case overage > severeOverageRatio:
		target = int(float64(f.cfg.MaxContentChars) * aggressiveTargetRatio)
	case overage > moderateOverageRatio:
		target = int(float64(f.cfg.MaxContentChars) * moderateTargetRatio)
	default:
		target = int(float64(f.cfg.MaxContentChars) * conservativeTargetRatio)
	}

	f.log.Debug("aggressive truncation",
		observability.Int("targetChars", target),
		observability.Int("contentChars", len(content)))

	if len(priorityPaths) > 0 {
		return f.TruncateWithPriority(content, target, priorityPaths)
	}
	return f.TruncateAggressive(content, target)
}
