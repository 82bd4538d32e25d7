package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlmathbook/mlmath/internal/config"
	"github.com/mlmathbook/mlmath/internal/db"
	"github.com/mlmathbook/mlmath/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interactive reading server",
	Long:  `Starts the mlmath reading server: REST API for chapters and settings plus a websocket session per reader for scroll tracking and navigation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "content=%s data=%s port=%d\n", cfg.ContentDir, cfg.DataDir, cfg.Server.Port)
		}

		database, err := db.Open(filepath.Join(cfg.DataDir, "mlmath.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:       cfg.Server.Port,
			BaseURL:    cfg.Server.BaseURL,
			ContentDir: cfg.ContentDir,
			AllowAll:   cfg.Server.AllowAll,
		}, database)

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() { done <- srv.Start() }()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-done:
			return err
		case <-sig:
			fmt.Fprintln(os.Stderr, "\nShutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
