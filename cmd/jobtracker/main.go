// Package main provides the entry point for the Job Tracker HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobtracker",
	Short: "Job Tracker HTTP API Server",
	Long:  "Job Tracker is a personal job-application tracker: per-user application records, pipeline statistics, and a bearer-authenticated REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
