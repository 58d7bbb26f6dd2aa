// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package fitter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicd-ai-toolkit/contextfit/pkg/observability"
)

func TestSmartFitComfortableUnchanged(t *testing.T) {
	f := newTestFitter() // comfort ceiling: 800 tokens = 3200 chars
	content := buildFileBlock("src/a.go", 30)
	require.Less(t, len(content), 3200)

	assert.Equal(t, content, f.SmartFit(content, nil))
}

func TestSmartFitComfortableWithPriorityUnchanged(t *testing.T) {
	f := newTestFitter()
	content := buildFileBlock("src/a.go", 30)

	// Baseline truncation changed nothing, so priority handling is moot.
	assert.Equal(t, content, f.SmartFit(content, []string{"src/a.go"}))
}

func TestSmartFitGraduatedTargets(t *testing.T) {
	f := newTestFitter() // MaxContextTokens 1000, MaxContentChars 4000
	marker := testBudgetConfig().TruncationMarker

	// Blank lines are always emitted and only stop at the character
	// target, so the output length exposes which tier was chosen.
	tests := []struct {
		name       string
		chars      int // estimated tokens = chars/4
		wantTarget int
	}{
		{"severe overage gets 40 percent", 8000, 1600},   // 2000 tokens, 2.0x
		{"moderate overage gets 60 percent", 5000, 2400}, // 1250 tokens, 1.25x
		{"mild overage gets 80 percent", 4400, 3200},     // 1100 tokens, 1.1x
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.Repeat("\n", tt.chars)

			got := f.SmartFit(content, nil)

			assert.Len(t, got, tt.wantTarget+len(marker))
			assert.True(t, strings.HasSuffix(got, marker))
		})
	}
}

func TestSmartFitRoutesToPriorityTruncation(t *testing.T) {
	f := newTestFitter() // AggressiveLines 5
	var sb strings.Builder
	for _, p := range []string{"a/a.go", "b/b.go", "c/c.go", "d/d.go", "e/e.go", "f/f.go"} {
		sb.WriteString(buildFileBlock(p, 100))
	}
	content := sb.String()
	require.Greater(t, f.Calculator().EstimateTokens(content), 1500, "fixture must overshoot severely")

	got := f.SmartFit(content, []string{"c/c.go"})

	counts := contentLines(got)
	assert.GreaterOrEqual(t, counts["c/c.go"], 10, "priority file keeps the doubled allowance")
	for _, p := range []string{"a/a.go", "b/b.go", "d/d.go", "e/e.go", "f/f.go"} {
		assert.LessOrEqual(t, counts[p], 5, "%s is held to the flat allowance", p)
	}
	assert.True(t, strings.HasSuffix(got, testBudgetConfig().TruncationMarker))
}

func TestSmartFitWarnsOnUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	f := New(testBudgetConfig(), observability.NewLoggerTo(&buf, "warn"))
	content := strings.Repeat("no headers here at all\n", 300)

	got := f.SmartFit(content, nil)

	assert.NotEmpty(t, got)
	assert.Contains(t, buf.String(), "unsupported dump format")
	assert.Contains(t, buf.String(), "unknown")
}

func TestSmartFitEmptyContent(t *testing.T) {
	f := newTestFitter()

	assert.Equal(t, "", f.SmartFit("", nil))
}
