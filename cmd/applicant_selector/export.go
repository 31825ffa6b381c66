package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/applicant-selector/internal/export"
	"github.com/jonathan/applicant-selector/internal/server"
	"github.com/jonathan/applicant-selector/internal/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export applicants to CSV or XLSX",
	Long:  "Writes every stored applicant, highest overall score first, to a CSV file or an Excel workbook with a summary sheet.",
	RunE:  runExport,
}

var (
	exportFormat string
	exportOutput string
	exportStatus string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Path to the output file (required)")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "Only export applicants with this status")

	if err := exportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	status := types.Status(exportStatus)
	if status != "" && !status.IsValid() {
		return fmt.Errorf("unknown status %q", exportStatus)
	}

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

	applicants, err := server.AllApplicants(ctx, database, status)
	if err != nil {
		return fmt.Errorf("failed to load applicants: %w", err)
	}

	if err := writeExport(exportOutput, format, applicants); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d applicants to %s\n", len(applicants), exportOutput)
	return nil
}

func writeExport(path string, format export.Format, applicants []types.ScoredApplicant) error {
	// Ensure output directory exists
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	if err := export.Write(f, format, applicants); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", path, err)
	}
	return nil
}
