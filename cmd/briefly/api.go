package main

import (
	"github.com/brieflyhq/briefly/internal/api"
	"github.com/brieflyhq/briefly/internal/server/endpoints"
)

var serverURL string

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// The same endpoint definitions that serve HTTP also provide the CLI
	// commands, so the api command tree is built from the registry.
	registry := api.NewRegistry()
	for _, ep := range endpoints.All() {
		registry.Register(ep)
	}

	apiCmd := registry.BuildCommands(getServerURL)

	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:3000", "Server URL",
	)

	rootCmd.AddCommand(apiCmd)
}
