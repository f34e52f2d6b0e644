/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/Tedomi2525/My-project/config"
	"github.com/Tedomi2525/My-project/internal/backend"
	"github.com/Tedomi2525/My-project/internal/server"
	"github.com/spf13/cobra"
)

// devserverCmd represents the devserver command
var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Starts an in-memory development backend",
	Long: `Starts a development backend that serves the REST contract the client
uses, backed by memory. It is seeded with the accounts admin/admin123,
teacher/teacher123 and student/student123. Usage:

	examctl devserver
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}

		srv, err := server.New(cfg.DevServer)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()
		slog.Info("dev server listening", "addr", srv.Addr(), "seed_accounts", len(backend.SeedAccounts))

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
		}

		slog.Info("shutting down dev server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(devserverCmd)
}
