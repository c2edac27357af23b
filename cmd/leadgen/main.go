// Package main provides the entry point for the lead generation dashboard server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	noCache    bool
)

var rootCmd = &cobra.Command{
	Use:   "leadgen",
	Short: "Lead generation dashboard",
	Long: "leadgen finds public professional and social profiles through the Custom Search API, " +
		"normalizes them per platform, enriches them from their profile pages and exports them as CSV.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text or json)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Bypass the Redis page cache")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
