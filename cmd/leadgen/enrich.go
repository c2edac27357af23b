package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/leadgen/internal/observability"
	"github.com/spf13/cobra"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <profile-url>",
	Short: "Fetch a public profile page and print the details found on it",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnrich,
}

var enrichJSON bool

func init() {
	enrichCmd.Flags().BoolVar(&enrichJSON, "json", false, "Print the profile as JSON")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	profile, err := a.enricher.EnrichURL(ctx, args[0])
	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}

	if enrichJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintProfile(&profile)
	return nil
}
