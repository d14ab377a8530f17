package main

import (
	"github.com/spf13/cobra"

	"github.com/brieflyhq/briefly/internal/api"
	"github.com/brieflyhq/briefly/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "briefly",
	Short: "Text summarization service backed by OpenAI",
	Long: `Briefly is a small web service that summarizes text using OpenAI
chat completions.

It serves a browser UI for pasting text, a JSON API for programmatic
use, and drives the model with a YAML prompt template that can be
edited without recompiling.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.briefly/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "briefly home directory (default: ~/.briefly)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
