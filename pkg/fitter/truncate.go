// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package fitter

import "strings"

// boundarySnapRatio: a boundary found in the last 20% of the candidate is
// close enough to the limit to be worth snapping back to.
const boundarySnapRatio = 0.8

// Truncate cuts content to at most maxChars characters, preferring to cut
// at a file-header or section boundary near the limit.
//
// Idempotent: content at or under the limit is returned unchanged,
// including content that already ends in the truncation marker. When a cut
// is made the marker is always appended, so the result length is at most
// maxChars + len(marker).
//
// Known limitation: a cut that lands inside a code fence is not repaired;
// callers that need balanced fences use the line-level truncators.
func (f *Fitter) Truncate(content string, maxChars int) string {
	if len(content) <= maxChars {
		return content
	}

	candidate := content[:maxChars]
	threshold := int(float64(maxChars) * boundarySnapRatio)

	// Header boundary takes priority over the section marker.
	if idx := lastHeaderIndex(candidate); idx > threshold {
		return content[:idx] + f.cfg.TruncationMarker
	}
	if idx := strings.LastIndex(candidate, "\n---"); idx > threshold {
		return content[:idx] + f.cfg.TruncationMarker
	}

	return candidate + f.cfg.TruncationMarker
}

// lastHeaderIndex returns the byte offset of the start of the last
// file-header line in s, or -1 if there is none.
func lastHeaderIndex(s string) int {
	// Headers are line-anchored: check offset 0 and every position after \n.
	for i := len(s) - 1; i >= 0; i-- {
		if i > 0 && s[i-1] != '\n' {
			continue
		}
		if s[i] != '#' {
			continue
		}
		end := strings.IndexByte(s[i:], '\n')
		var line string
		if end < 0 {
			line = s[i:]
		} else {
			line = s[i : i+end]
		}
		if isHeaderLine(line) {
			return i
		}
	}
	return -1
}
