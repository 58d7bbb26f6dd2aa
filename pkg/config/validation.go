// Package config handles configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxCharsPerToken is the maximum sensible estimation ratio
	MaxCharsPerToken = 16
	// MaxAggressiveLines is the maximum per-file line allowance
	MaxAggressiveLines = 10000
)

// Validate validates the configuration
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	if err := c.Budget.Validate(); err != nil {
		return fmt.Errorf("budget config: %w", err)
	}

	if err := c.Producer.Validate(); err != nil {
		return fmt.Errorf("producer config: %w", err)
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache config: %w", err)
	}

	if err := c.Global.Validate(); err != nil {
		return fmt.Errorf("global config: %w", err)
	}

	return nil
}

// Validate validates the budget constants. Negative or zero budgets are a
// programmer error and must fail fast here rather than inside the fitter.
func (b *BudgetConfig) Validate() error {
	if b.CharsPerToken < 1 {
		return fmt.Errorf("chars_per_token must be at least 1")
	}
	if b.CharsPerToken > MaxCharsPerToken {
		return fmt.Errorf("chars_per_token must not exceed %d", MaxCharsPerToken)
	}
	if b.MaxContextTokens < 1 {
		return fmt.Errorf("max_context_tokens must be positive")
	}
	if b.ReservedPromptTokens < 0 || b.ReservedResponseTokens < 0 {
		return fmt.Errorf("reserved token counts must be non-negative")
	}
	available := b.MaxContextTokens - b.ReservedPromptTokens - b.ReservedResponseTokens
	if available <= 0 {
		return fmt.Errorf("reserved tokens (%d) leave no room in context window (%d)",
			b.ReservedPromptTokens+b.ReservedResponseTokens, b.MaxContextTokens)
	}
	if b.SummaryReserveTokens < 0 {
		return fmt.Errorf("summary_reserve_tokens must be non-negative")
	}
	if b.SummaryReserveTokens >= available {
		return fmt.Errorf("summary_reserve_tokens (%d) exceeds available content tokens (%d)",
			b.SummaryReserveTokens, available)
	}
	if b.MaxContentChars < 1 {
		return fmt.Errorf("max_content_chars must be positive")
	}
	if b.AggressiveLines < 1 {
		return fmt.Errorf("aggressive_lines must be at least 1")
	}
	if b.AggressiveLines > MaxAggressiveLines {
		return fmt.Errorf("aggressive_lines must not exceed %d", MaxAggressiveLines)
	}
	if b.TruncationMarker == "" {
		return fmt.Errorf("truncation_marker is required")
	}
	return nil
}

// Validate validates the producer configuration
func (p *ProducerConfig) Validate() error {
	if p.Command == "" {
		return fmt.Errorf("producer command is required")
	}
	if p.Timeout != "" {
		if _, err := time.ParseDuration(p.Timeout); err != nil {
			return fmt.Errorf("invalid timeout format: %w", err)
		}
	}
	if p.MaxOutputMB < 1 {
		return fmt.Errorf("max_output_mb must be positive")
	}
	return nil
}

// Validate validates the cache configuration
func (c *CacheConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.TTL != "" {
		if _, err := time.ParseDuration(c.TTL); err != nil {
			return fmt.Errorf("invalid ttl format: %w", err)
		}
	}
	if c.MaxEntries < 1 {
		return fmt.Errorf("max_entries must be positive when cache is enabled")
	}
	return nil
}

// Validate validates the global configuration
func (g *GlobalConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if g.LogLevel != "" && !validLevels[strings.ToLower(g.LogLevel)] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", g.LogLevel)
	}
	return nil
}
