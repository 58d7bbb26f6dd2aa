// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

// DefaultTruncationMarker is appended to any output that was cut.
const DefaultTruncationMarker = "\n\n[... content truncated to fit context window ...]"

// DefaultConfig returns the default configuration.
// These values are used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Budget:   DefaultBudgetConfig(),
		Producer: DefaultProducerConfig(),
		Cache:    DefaultCacheConfig(),
		Global:   DefaultGlobalConfig(),
	}
}

// DefaultBudgetConfig returns the default budget constants.
func DefaultBudgetConfig() BudgetConfig {
	return BudgetConfig{
		CharsPerToken:          4,
		MaxContextTokens:       32000,
		ReservedPromptTokens:   2048,
		ReservedResponseTokens: 4096,
		MaxContentChars:        120000,
		AggressiveLines:        60,
		SummaryReserveTokens:   1500,
		TruncationMarker:       DefaultTruncationMarker,
	}
}

// DefaultProducerConfig returns default dump producer settings.
// The command is expected to print a markdown-style repository dump
// to stdout; repomix is the reference producer.
func DefaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		Command:     "repomix",
		Args:        []string{"--style", "markdown", "--stdout"},
		Timeout:     "120s",
		MaxOutputMB: 10,
	}
}

// DefaultCacheConfig returns default fit-result cache settings.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:    true,
		TTL:        "15m",
		MaxEntries: 128,
	}
}

// DefaultGlobalConfig returns default global configuration.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		LogLevel: "info",
	}
}

func applyDefaults(cfg *Config) {
	def := DefaultBudgetConfig()
	if cfg.Budget.CharsPerToken == 0 {
		cfg.Budget.CharsPerToken = def.CharsPerToken
	}
	if cfg.Budget.MaxContextTokens == 0 {
		cfg.Budget.MaxContextTokens = def.MaxContextTokens
	}
	if cfg.Budget.ReservedPromptTokens == 0 {
		cfg.Budget.ReservedPromptTokens = def.ReservedPromptTokens
	}
	if cfg.Budget.ReservedResponseTokens == 0 {
		cfg.Budget.ReservedResponseTokens = def.ReservedResponseTokens
	}
	if cfg.Budget.MaxContentChars == 0 {
		cfg.Budget.MaxContentChars = def.MaxContentChars
	}
	if cfg.Budget.AggressiveLines == 0 {
		cfg.Budget.AggressiveLines = def.AggressiveLines
	}
	if cfg.Budget.SummaryReserveTokens == 0 {
		cfg.Budget.SummaryReserveTokens = def.SummaryReserveTokens
	}
	if cfg.Budget.TruncationMarker == "" {
		cfg.Budget.TruncationMarker = def.TruncationMarker
	}

	defProd := DefaultProducerConfig()
	if cfg.Producer.Command == "" {
		cfg.Producer.Command = defProd.Command
		if cfg.Producer.Args == nil {
			cfg.Producer.Args = defProd.Args
		}
	}
	if cfg.Producer.Timeout == "" {
		cfg.Producer.Timeout = defProd.Timeout
	}
	if cfg.Producer.MaxOutputMB == 0 {
		cfg.Producer.MaxOutputMB = defProd.MaxOutputMB
	}

	defCache := DefaultCacheConfig()
	if cfg.Cache.TTL == "" {
		cfg.Cache.TTL = defCache.TTL
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = defCache.MaxEntries
	}

	if cfg.Global.LogLevel == "" {
		cfg.Global.LogLevel = "info"
	}
}
