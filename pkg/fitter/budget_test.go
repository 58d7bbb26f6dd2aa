// Package fitter tests
package fitter

import (
	"strings"
	"testing"

	"github.com/cicd-ai-toolkit/contextfit/pkg/config"
)

func testBudgetConfig() config.BudgetConfig {
	return config.BudgetConfig{
		CharsPerToken:          4,
		MaxContextTokens:       1000,
		ReservedPromptTokens:   100,
		ReservedResponseTokens: 100,
		MaxContentChars:        4000,
		AggressiveLines:        5,
		SummaryReserveTokens:   100,
		TruncationMarker:       "\n[TRUNCATED]",
	}
}

func TestEstimateTokens(t *testing.T) {
	calc := NewCalculator(testBudgetConfig())

	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 4000), 1000},
		{strings.Repeat("x", 4001), 1001},
	}

	for _, tt := range tests {
		if got := calc.EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(len %d) = %d, want %d", len(tt.text), got, tt.want)
		}
	}
}

func TestAvailableContentTokens(t *testing.T) {
	calc := NewCalculator(testBudgetConfig())

	if got := calc.AvailableContentTokens(); got != 800 {
		t.Errorf("AvailableContentTokens() = %d, want 800", got)
	}
}

func TestChunkCharBudgets(t *testing.T) {
	calc := NewCalculator(testBudgetConfig())

	if got := calc.FirstChunkChars(); got != 3200 {
		t.Errorf("FirstChunkChars() = %d, want 3200", got)
	}
	if got := calc.SubsequentChunkChars(); got != 2800 {
		t.Errorf("SubsequentChunkChars() = %d, want 2800", got)
	}
	if calc.SubsequentChunkChars() >= calc.FirstChunkChars() {
		t.Error("subsequent budget must be smaller than the first-chunk budget")
	}
}

func TestWithEstimator(t *testing.T) {
	calc := NewCalculator(testBudgetConfig()).WithEstimator(func(text string) int {
		return len(strings.Fields(text))
	})

	if got := calc.EstimateTokens("three word text"); got != 3 {
		t.Errorf("custom estimator = %d, want 3", got)
	}

	// The original calculator keeps the heuristic.
	orig := NewCalculator(testBudgetConfig())
	if got := orig.EstimateTokens("three word text"); got != 4 {
		t.Errorf("heuristic estimator = %d, want 4", got)
	}
}
