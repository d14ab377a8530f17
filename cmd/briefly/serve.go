package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/brieflyhq/briefly/internal/config"
	"github.com/brieflyhq/briefly/internal/home"
	"github.com/brieflyhq/briefly/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Briefly server",
	Long: `Start the Briefly HTTP server.

The server serves the browser UI at / and the JSON API under /api.
Configuration is read from the config file and watched for changes,
so the OpenAI settings can be updated without a restart.

Examples:
  briefly serve                  # Start on default port 3000
  briefly serve --port 8080      # Start on custom port
  briefly serve --host 0.0.0.0   # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Ensure the home directory and default prompt template exist
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		// Load config and watch for changes
		cfgMgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfgMgr.WatchConfig()

		cfg := cfgMgr.Get()
		host := serveHost
		if host == "" {
			host = cfg.Server.Host
		}
		port := servePort
		if port == "" {
			port = cfg.Server.Port
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			ConfigManager: cfgMgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config: 127.0.0.1)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config: 3000)")

	rootCmd.AddCommand(serveCmd)
}
