/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/ghostwriter/pkg/api"
	"github.com/ssargent/ghostwriter/pkg/config"
	"github.com/ssargent/ghostwriter/pkg/metrics"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the ghostwriter REST API. Uploaded recordings are encoded and kept in
the ghost archive. Every /api/v1 route requires the X-API-Key header.

When the configured API key is "auto" a key is generated for this run and
printed once.

Examples:
  ghostwriter serve
  ghostwriter serve --bind 0.0.0.0 --port 9200 --api-key mysecretkey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)
		logger := loggerFrom(cmd)

		if cmd.Flags().Changed("bind") {
			cfg.Server.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.Server.APIKey, _ = cmd.Flags().GetString("api-key")
		}

		if cfg.Server.APIKey == "" || cfg.Server.APIKey == "auto" {
			key, err := config.GenerateSecureKey(32)
			if err != nil {
				return err
			}
			cfg.Server.APIKey = key
			cmd.Printf("🔑 Generated API key for this run: %s\n", key)
		}

		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}

		if err := os.MkdirAll(cfg.ArchiveDir, 0755); err != nil {
			return fmt.Errorf("failed to create archive dir: %w", err)
		}
		archive, err := container.GetArchiveFactory().OpenArchive(cfg.ArchiveDir)
		if err != nil {
			return err
		}
		defer func() { _ = archive.Close() }()

		m := metrics.New()
		if entries, err := archive.List(); err == nil {
			m.SetArchivedGhosts(len(entries))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("serving ghost archive", slog.String("archive_dir", cfg.ArchiveDir))
		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(ctx, archive, api.ServerConfig{
			Bind:           cfg.Server.Bind,
			Port:           cfg.Server.Port,
			APIKey:         cfg.Server.APIKey,
			MaxUploadBytes: cfg.Server.MaxUploadBytes,
			DefaultRace:    cfg.Race,
		}, m, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 9200, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().String("api-key", "", "API key for client authentication")
}
