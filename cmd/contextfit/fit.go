// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/contextfit/pkg/cache"
	"github.com/cicd-ai-toolkit/contextfit/pkg/fitter"
	"github.com/cicd-ai-toolkit/contextfit/pkg/observability"
	"github.com/cicd-ai-toolkit/contextfit/pkg/output"
	"github.com/cicd-ai-toolkit/contextfit/pkg/perf"
)

// fitFlags holds the flags for the fit command
type fitFlags struct {
	priority    []string
	maxChars    int
	out         string
	concurrency int
	noCache     bool
}

var fitOpts fitFlags

var fitCmd = &cobra.Command{
	Use:   "fit [input...]",
	Short: "Fit dump content into the context budget",
	Long: `Fit one or more dumps into the configured context-token budget.

Each input is a dump file, "-" for stdin, or a repository directory
(flattened with the configured producer command first). Oversized content
is truncated at file-header or section boundaries where possible; files
named with --priority keep a doubled line allowance when per-file
truncation kicks in.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if fitOpts.maxChars > 0 {
			cfg.Budget.MaxContentChars = fitOpts.maxChars
		}
		if fitOpts.out != "" && len(args) > 1 {
			return fmt.Errorf("--out requires a single input, got %d", len(args))
		}

		log := newLogger(cfg)
		f := fitter.New(cfg.Budget, log)

		var (
			store  *cache.MemoryCache
			keygen *cache.KeyGenerator
		)
		if cfg.Cache.Enabled && !fitOpts.noCache {
			store = cache.NewMemoryCache(cfg.Cache.MaxEntries)
			keygen = cache.NewKeyGenerator()
		}

		fitOne := func(input string) (output.FitResult, error) {
			content, err := readInput(cmd, cfg, log, input)
			if err != nil {
				return output.FitResult{}, err
			}

			key := ""
			if store != nil && input != "-" {
				resolved, err := filepath.Abs(input)
				if err == nil {
					key = keygen.GenerateForFit(resolved, "fit", cfg.Budget.MaxContentChars, fitOpts.priority)
					if cached, err := store.Get(cmd.Context(), key); err == nil {
						log.Debug("cache hit", observability.String("input", input))
						fitted := string(cached)
						return output.NewFitResult(input, content, fitted,
							f.Calculator().EstimateTokens(fitted)), nil
					}
				}
			}

			fitted := f.SmartFit(content, fitOpts.priority)
			if key != "" {
				if err := store.Set(cmd.Context(), key, []byte(fitted), cfg.Cache.TTLDuration()); err != nil {
					log.Warn("cache store failed", observability.Err(err))
				}
			}
			return output.NewFitResult(input, content, fitted,
				f.Calculator().EstimateTokens(fitted)), nil
		}

		results, err := perf.Map(cmd.Context(), args, fitOne, fitOpts.concurrency)
		if err != nil {
			return err
		}

		for _, res := range results {
			fmt.Fprint(cmd.ErrOrStderr(), output.FormatFitSummary(res))
			if err := writeOutput(cmd.OutOrStdout(), fitOpts.out, res.Content); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fitCmd)

	fitCmd.Flags().StringArrayVarP(&fitOpts.priority, "priority", "p", nil, "Priority file path (repeatable)")
	fitCmd.Flags().IntVar(&fitOpts.maxChars, "max-chars", 0, "Override the max content character budget")
	fitCmd.Flags().StringVarP(&fitOpts.out, "out", "o", "", "Write fitted content to a file instead of stdout")
	fitCmd.Flags().IntVar(&fitOpts.concurrency, "concurrency", 4, "Inputs fitted in parallel")
	fitCmd.Flags().BoolVar(&fitOpts.noCache, "no-cache", false, "Bypass the fit-result cache")
}
