// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/contextfit/pkg/fitter"
	"github.com/cicd-ai-toolkit/contextfit/pkg/output"
)

// chunkFlags holds the flags for the chunk command
type chunkFlags struct {
	outDir   string
	manifest string
}

var chunkOpts chunkFlags

var chunkCmd = &cobra.Command{
	Use:   "chunk [input]",
	Short: "Split dump content into budget-sized chunks",
	Long: `Split a dump into an ordered sequence of self-describing chunks.

Whole modules are kept together where they fit; oversized modules are
split at file boundaries and oversized files at line boundaries, with
the file header re-emitted on every sub-chunk and code fences kept
balanced. With --out-dir the chunks are written as numbered files;
otherwise they are printed to stdout in order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		content, err := readInput(cmd, cfg, log, args[0])
		if err != nil {
			return err
		}

		f := fitter.New(cfg.Budget, log)
		res := f.Chunk(content)

		fmt.Fprintln(cmd.ErrOrStderr(), output.FormatChunkSummary(args[0], res))

		if chunkOpts.outDir != "" {
			paths, err := output.WriteChunks(chunkOpts.outDir, res)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
		} else {
			for _, c := range res.Chunks {
				fmt.Fprintln(cmd.OutOrStdout(), c.Content)
			}
		}

		if chunkOpts.manifest != "" {
			m := output.NewManifest(args[0], res)
			if err := output.WriteManifest(chunkOpts.manifest, m); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chunkCmd)

	chunkCmd.Flags().StringVar(&chunkOpts.outDir, "out-dir", "", "Directory to write chunk-NNN.md files into")
	chunkCmd.Flags().StringVar(&chunkOpts.manifest, "manifest", "", "Write a YAML chunk manifest to this path")
}
