package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/applicant-selector/internal/server"
	"github.com/jonathan/applicant-selector/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that accepts applications and exposes the ranked applicant list.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or 5000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg, appOptions{persist: true})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	srv := server.New(server.Config{
		Port:                   cfg.Port,
		MaxUploadBytes:         server.DefaultMaxUploadBytes,
		DefaultAssessmentScore: cfg.DefaultAssessmentScore,
		RateLimit:              ratelimit.LoadConfig(cfg.UploadRatePerMinute, cfg.UploadBurst),
	}, a.database, a.processor)

	return srv.Start()
}
