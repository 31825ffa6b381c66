// Package main provides the entry point for the Applicant Selector API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "applicant_selector",
	Short: "Applicant Selector HTTP API Server",
	Long:  "Applicant Selector extracts profile fields from resumes and cover letters, scores applicants and ranks them via REST API.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file (environment variables override it)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
