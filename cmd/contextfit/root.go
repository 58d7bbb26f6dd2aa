// Package main provides the contextfit CLI application.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/contextfit/pkg/config"
	"github.com/cicd-ai-toolkit/contextfit/pkg/dump"
	"github.com/cicd-ai-toolkit/contextfit/pkg/observability"
	"github.com/cicd-ai-toolkit/contextfit/pkg/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contextfit",
	Short: "Fit repository dumps into LLM context windows",
	Long: `contextfit - budget-aware fitting of repository text dumps.

It truncates or chunks a flattened repository dump so the result fits a
bounded context-token budget, preserving file boundaries, keeping code
fences balanced, and never silently losing a file.`,
	Version:       version.FullString(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

// globalFlags holds the persistent flags shared by all subcommands
type globalFlags struct {
	config   string
	logLevel string
}

var globalOpts globalFlags

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalOpts.config, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&globalOpts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// loadConfig resolves configuration from --config, the environment, or the
// default search locations, then applies the --log-level override.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if globalOpts.config != "" {
		cfg, err = config.Load(globalOpts.config)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	if globalOpts.logLevel != "" {
		cfg.Global.LogLevel = globalOpts.logLevel
	}
	return cfg, nil
}

// newLogger builds the process logger from resolved configuration.
// Logs go to stderr so stdout stays clean for fitted content.
func newLogger(cfg *config.Config) observability.Logger {
	return observability.NewLogger(cfg.Global.LogLevel)
}

// readInput resolves one input argument to dump text:
//   - "-" reads stdin;
//   - an existing directory is flattened with the configured producer;
//   - anything else is read as a dump file.
func readInput(cmd *cobra.Command, cfg *config.Config, log observability.Logger, input string) (string, error) {
	if input == "-" {
		return dump.Read(input, cmd.InOrStdin())
	}
	if info, err := os.Stat(input); err == nil && info.IsDir() {
		producer := dump.NewProducer(cfg.Producer, log)
		return producer.Produce(cmd.Context(), input)
	}
	return dump.Read(input, nil)
}

// writeOutput writes content to path, or to stdout when path is empty.
func writeOutput(w io.Writer, path, content string) error {
	if path == "" {
		_, err := fmt.Fprintln(w, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
