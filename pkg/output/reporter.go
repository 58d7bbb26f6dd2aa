// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package output provides result formatting and reporting.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cicd-ai-toolkit/contextfit/pkg/errors"
	"github.com/cicd-ai-toolkit/contextfit/pkg/fitter"
)

// FitResult describes one single-blob fitting operation.
type FitResult struct {
	RunID           string `yaml:"runId"`
	Input           string `yaml:"input"`
	Content         string `yaml:"-"`
	OriginalChars   int    `yaml:"originalChars"`
	FittedChars     int    `yaml:"fittedChars"`
	EstimatedTokens int    `yaml:"estimatedTokens"`
	Truncated       bool   `yaml:"truncated"`
}

// NewFitResult builds a FitResult with a fresh run ID.
func NewFitResult(input, original, fitted string, estimatedTokens int) FitResult {
	return FitResult{
		RunID:           uuid.NewString(),
		Input:           input,
		Content:         fitted,
		OriginalChars:   len(original),
		FittedChars:     len(fitted),
		EstimatedTokens: estimatedTokens,
		Truncated:       len(fitted) != len(original),
	}
}

// Manifest is the self-describing metadata of a chunking run, suitable
// for reconstructing the file-to-chunk mapping downstream.
type Manifest struct {
	RunID                string            `yaml:"runId"`
	Input                string            `yaml:"input"`
	TotalChunks          int               `yaml:"totalChunks"`
	TotalEstimatedTokens int               `yaml:"totalEstimatedTokens"`
	Chunks               []fitter.ChunkMeta `yaml:"chunks"`
}

// NewManifest builds a manifest for a chunking result.
func NewManifest(input string, res fitter.ChunkResult) Manifest {
	metas := make([]fitter.ChunkMeta, len(res.Chunks))
	for i, c := range res.Chunks {
		metas[i] = c.Meta
	}
	return Manifest{
		RunID:                uuid.NewString(),
		Input:                input,
		TotalChunks:          len(res.Chunks),
		TotalEstimatedTokens: res.TotalEstimatedTokens,
		Chunks:               metas,
	}
}

// Marshal renders the manifest as YAML.
func (m Manifest) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, errors.ValidationError("failed to marshal manifest", err)
	}
	return data, nil
}

// FormatFitSummary renders a one-operation human-readable summary.
func FormatFitSummary(res FitResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "run %s: %s\n", res.RunID, res.Input)
	fmt.Fprintf(&sb, "  %d chars -> %d chars (~%d tokens)", res.OriginalChars, res.FittedChars, res.EstimatedTokens)
	if res.Truncated {
		sb.WriteString(" [truncated]")
	}
	sb.WriteString("\n")
	return sb.String()
}

// FormatChunkSummary renders "part N of M" lines for a chunk result.
func FormatChunkSummary(input string, res fitter.ChunkResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d chunk(s), ~%d tokens total\n", input, len(res.Chunks), res.TotalEstimatedTokens)
	for _, c := range res.Chunks {
		fmt.Fprintf(&sb, "  part %d of %d [%s] ~%d tokens",
			c.Meta.Index+1, c.Meta.Total, c.Meta.Strategy, c.Meta.EstimatedTokens)
		if len(c.Meta.Files) > 0 {
			fmt.Fprintf(&sb, " (%s)", summarizeFiles(c.Meta.Files))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// summarizeFiles keeps chunk summary lines readable for wide chunks.
func summarizeFiles(files []string) string {
	const maxListed = 3
	if len(files) <= maxListed {
		return strings.Join(files, ", ")
	}
	return fmt.Sprintf("%s, +%d more", strings.Join(files[:maxListed], ", "), len(files)-maxListed)
}

// WriteChunks writes each chunk to dir as a numbered markdown file and
// returns the written paths in chunk order.
func WriteChunks(dir string, res fitter.ChunkResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.ValidationError(fmt.Sprintf("cannot create output dir: %s", dir), err)
	}

	paths := make([]string, 0, len(res.Chunks))
	for _, c := range res.Chunks {
		name := fmt.Sprintf("chunk-%03d.md", c.Meta.Index)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(c.Content), 0o644); err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("cannot write chunk file: %s", path), err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteManifest writes the YAML manifest next to the chunk files.
func WriteManifest(path string, m Manifest) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ValidationError(fmt.Sprintf("cannot write manifest: %s", path), err)
	}
	return nil
}
