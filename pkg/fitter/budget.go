// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package fitter

import (
	"github.com/cicd-ai-toolkit/contextfit/pkg/config"
)

// TokenEstimator converts text to an estimated token count. The default
// implementation is a fixed chars-per-token heuristic; an exact tokenizer
// can be substituted without changing chunking shape.
type TokenEstimator func(text string) int

// Calculator converts the token budget constants into character budgets.
// All methods are pure functions of the configuration.
type Calculator struct {
	cfg      config.BudgetConfig
	estimate TokenEstimator
}

// NewCalculator creates a budget calculator using the heuristic estimator.
// The config must have been validated; zero budgets are a config error.
func NewCalculator(cfg config.BudgetConfig) *Calculator {
	c := &Calculator{cfg: cfg}
	c.estimate = func(text string) int {
		if len(text) == 0 {
			return 0
		}
		// ceil(len / charsPerToken)
		return (len(text) + cfg.CharsPerToken - 1) / cfg.CharsPerToken
	}
	return c
}

// WithEstimator returns a copy of the calculator using a custom estimator.
func (c *Calculator) WithEstimator(est TokenEstimator) *Calculator {
	cp := *c
	cp.estimate = est
	return &cp
}

// EstimateTokens estimates the token count of text.
func (c *Calculator) EstimateTokens(text string) int {
	return c.estimate(text)
}

// AvailableContentTokens is the context window minus the reserved
// prompt and response allowances.
func (c *Calculator) AvailableContentTokens() int {
	return c.cfg.MaxContextTokens - c.cfg.ReservedResponseTokens - c.cfg.ReservedPromptTokens
}

// FirstChunkChars is the character budget for a single blob or the first
// chunk of a sequence. Floor conversion: never over-allocate.
func (c *Calculator) FirstChunkChars() int {
	return c.AvailableContentTokens() * c.cfg.CharsPerToken
}

// SubsequentChunkChars is the smaller budget for every chunk after the
// first; it reserves room for a carried-forward context summary.
func (c *Calculator) SubsequentChunkChars() int {
	return (c.AvailableContentTokens() - c.cfg.SummaryReserveTokens) * c.cfg.CharsPerToken
}
