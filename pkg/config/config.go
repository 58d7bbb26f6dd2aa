// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config provides configuration management for contextfit.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Project Config: ./.contextfit.yaml (searched upward)
// 3. User Config: $HOME/.config/contextfit/config.yaml
// 4. Environment Variables: CONTEXTFIT_*
package config

import (
	"time"
)

// Config represents the complete application configuration.
type Config struct {
	Budget   BudgetConfig   `yaml:"budget"`
	Producer ProducerConfig `yaml:"producer"`
	Cache    CacheConfig    `yaml:"cache"`
	Global   GlobalConfig   `yaml:"global"`
}

// BudgetConfig holds the size budget constants used by the fitter.
// All downstream char budgets derive from these scalars.
type BudgetConfig struct {
	// CharsPerToken is the fixed chars-per-token estimation ratio.
	CharsPerToken int `yaml:"chars_per_token"`
	// MaxContextTokens is the context window of the downstream consumer.
	MaxContextTokens int `yaml:"max_context_tokens"`
	// ReservedPromptTokens is held back for the surrounding prompt text.
	ReservedPromptTokens int `yaml:"reserved_prompt_tokens"`
	// ReservedResponseTokens is held back for the generated response.
	ReservedResponseTokens int `yaml:"reserved_response_tokens"`
	// MaxContentChars is the raw character ceiling for a single blob.
	MaxContentChars int `yaml:"max_content_chars"`
	// AggressiveLines is the per-file line allowance under aggressive truncation.
	AggressiveLines int `yaml:"aggressive_lines"`
	// SummaryReserveTokens is held back in subsequent chunks for a
	// carried-forward context summary.
	SummaryReserveTokens int `yaml:"summary_reserve_tokens"`
	// TruncationMarker is appended whenever content was cut.
	TruncationMarker string `yaml:"truncation_marker"`
}

// ProducerConfig contains settings for the external repository-flattening
// command that produces the raw dump.
type ProducerConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
	// Timeout is a duration string, e.g. "120s".
	Timeout string `yaml:"timeout"`
	// MaxOutputMB caps the captured subprocess output.
	MaxOutputMB int `yaml:"max_output_mb"`
}

// CacheConfig contains fit-result cache settings.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	// TTL is a duration string, e.g. "15m".
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

// TimeoutDuration returns the parsed producer timeout.
// Validate guarantees the string parses; a zero value means no timeout.
func (p *ProducerConfig) TimeoutDuration() time.Duration {
	if p.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// TTLDuration returns the parsed cache TTL.
func (c *CacheConfig) TTLDuration() time.Duration {
	if c.TTL == "" {
		return 0
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0
	}
	return d
}
