// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package fitter

import (
	"regexp"
	"strings"
)

// Format describes the detected file-header convention of a dump.
type Format struct {
	Name      string
	Supported bool
	Warning   string
}

// headerLine matches a supported file-header line and captures the path.
var headerLine = regexp.MustCompile(`^#{1,6}\s*File:\s*(.+?)\s*$`)

// formatProbe is one entry in the prioritized detection list. Line-anchored
// probes run against the text outside code fences; probes with scanFenced
// set run against the raw text.
type formatProbe struct {
	name       string
	re         *regexp.Regexp
	supported  bool
	scanFenced bool
	warning    string
}

// formatProbes is ordered: the supported convention first, then known bad
// variants. First match wins.
var formatProbes = []formatProbe{
	{
		name:      "markdown-file-header",
		re:        regexp.MustCompile(`(?m)^#{1,6}\s*File:\s*\S`),
		supported: true,
	},
	{
		name:    "lowercase-file-header",
		re:      regexp.MustCompile(`(?m)^#{1,6}\s*file:\s*\S`),
		warning: "headers use lowercase 'file:'; file boundaries will not be recognized",
	},
	{
		name:    "source-header",
		re:      regexp.MustCompile(`(?m)^#{1,6}\s*Source:\s*\S`),
		warning: "headers use 'Source:' instead of 'File:'; file boundaries will not be recognized",
	},
	{
		name:    "path-header",
		re:      regexp.MustCompile(`(?m)^#{1,6}\s*Path:\s*\S`),
		warning: "headers use 'Path:' instead of 'File:'; file boundaries will not be recognized",
	},
	{
		name:       "fenced-file-header",
		re:         regexp.MustCompile("(?s)```[^`]*#+\\s*File:"),
		scanFenced: true,
		warning:    "file headers appear inside code fences; file boundaries will not be recognized",
	},
}

// DetectFormat sniffs which file-header convention the dump uses.
// It never fails; an unrecognized dump yields {Name: "unknown"} and
// downstream components degrade to whole-blob treatment.
//
// Header-shaped lines inside code fences are not headers: the parser
// skips them, so the line-anchored probes only see the unfenced text.
// A dump whose headers all sit inside fences falls through to the
// fenced-file-header variant.
func DetectFormat(text string) Format {
	unfenced := outsideFences(text)
	for _, p := range formatProbes {
		candidate := unfenced
		if p.scanFenced {
			candidate = text
		}
		if p.re.MatchString(candidate) {
			return Format{Name: p.name, Supported: p.supported, Warning: p.warning}
		}
	}
	return Format{Name: "unknown", Supported: false, Warning: "no recognized file headers found"}
}

// outsideFences returns the lines of text that lie outside code fences.
func outsideFences(text string) string {
	var sb strings.Builder
	inFence := false
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), fenceMarker) {
			inFence = !inFence
			continue
		}
		if !inFence {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// headerPath returns the path captured from a header line, or "" if the
// line is not a header.
func headerPath(line string) string {
	m := headerLine.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// isHeaderLine reports whether the line starts a new file block.
func isHeaderLine(line string) bool {
	return headerLine.MatchString(line)
}
