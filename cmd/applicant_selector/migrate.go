package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  "Creates the applicants and skills tables and their indexes if they do not exist. Safe to run repeatedly.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Schema applied")
	return nil
}
