package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brieflyhq/briefly/internal/config"
	"github.com/brieflyhq/briefly/internal/home"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage briefly configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a default config file to the briefly home directory.

The generated file documents every setting and reads the OpenAI API
key from the OPENAI_API_KEY environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		if h.ConfigExists() {
			return fmt.Errorf("config file already exists at %s", h.ConfigPath())
		}

		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", h.ConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
