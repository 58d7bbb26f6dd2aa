// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/contextfit/pkg/fitter"
)

var detectCmd = &cobra.Command{
	Use:   "detect [input]",
	Short: "Detect the header convention of a dump",
	Long:  `Report which file-header convention a dump uses and whether the fitter fully supports it.`,
	Args:  cobra.ExactArgs(1),
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

		format := fitter.DetectFormat(content)
		fmt.Fprintf(cmd.OutOrStdout(), "format: %s\n", format.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "supported: %t\n", format.Supported)
		if format.Warning != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", format.Warning)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
