// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package fitter

import "strings"

// fenceMarker delimits embedded code regions in the dump.
const fenceMarker = "```"

// priorityMultiplier: files nominated by the caller keep this many times
// the per-file line allowance.
const priorityMultiplier = 2

// TruncateWithPriority applies per-file line budgets, granting files that
// fuzzy-match priorityPaths a doubled allowance.
func (f *Fitter) TruncateWithPriority(content string, limit int, priorityPaths []string) string {
	return f.truncateLines(content, limit, func(path string) int {
		if matchesPriority(path, priorityPaths) {
			return priorityMultiplier * f.cfg.AggressiveLines
		}
		return f.cfg.AggressiveLines
	})
}

// TruncateAggressive applies the flat per-file line budget to every file.
func (f *Fitter) TruncateAggressive(content string, limit int) string {
	budget := f.cfg.AggressiveLines
	return f.truncateLines(content, limit, func(string) int { return budget })
}

// truncateLines is a single forward pass over lines enforcing a per-file
// line budget. It maintains the current file path, a fence-state boolean
// for the emitted output, a per-file emitted-line counter, and a running
// character total so the whole scan stays O(n).
//
// Structural guarantees, regardless of budgets:
//   - header lines, blank lines, and fence lines are always emitted, so
//     file boundaries are never silently merged and every opened fence
//     in the output is closed;
//   - an early exit inside an open fence synthesizes a closing fence line.
//
// Only content lines count against the per-file budget; headers, blanks
// and fences are boundary lines.
func (f *Fitter) truncateLines(content string, limit int, lineBudget func(path string) int) string {
	lines := strings.Split(content, "\n")

	out := make([]string, 0, len(lines))
	total := 0
	inFence := false
	fileLines := 0
	budget := lineBudget("")
	dropped := false

	emit := func(line string) {
		if len(out) > 0 {
			total++ // joining newline
		}
		out = append(out, line)
		total += len(line)
	}

	for _, line := range lines {
		if total > limit {
			dropped = true
			break
		}

		if isHeaderLine(line) {
			fileLines = 0
			inFence = false
			budget = lineBudget(headerPath(line))
			emit(line)
			continue
		}

		trimmed := strings.TrimSpace(line)

		// Structural lines are always emitted: blanks, and fence lines
		// (so a line closing an open fence is never dropped).
		if strings.HasPrefix(trimmed, fenceMarker) {
			emit(line)
			inFence = !inFence
			continue
		}
		if trimmed == "" {
			emit(line)
			continue
		}

		if fileLines >= budget {
			dropped = true
			continue
		}

		emit(line)
		fileLines++
	}

	if inFence {
		emit(fenceMarker)
	}

	result := strings.Join(out, "\n")
	switch {
	case len(result) > limit:
		result = result[:limit] + f.cfg.TruncationMarker
	case dropped:
		result += f.cfg.TruncationMarker
	default:
		return content
	}
	return result
}

// matchesPriority reports whether path fuzzy-matches any caller-nominated
// priority path: exact match or path-suffix match after separator
// normalization. Suffix collisions on unrelated files are a known
// limitation of the heuristic.
func matchesPriority(path string, priorityPaths []string) bool {
	if path == "" || len(priorityPaths) == 0 {
		return false
	}
	p := strings.ReplaceAll(path, `\`, "/")
	for _, pr := range priorityPaths {
		q := strings.ReplaceAll(pr, `\`, "/")
		if p == q || strings.HasSuffix(p, "/"+q) {
			return true
		}
	}
	return false
}
