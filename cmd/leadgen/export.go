package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/leadgen/internal/observability"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every reachable result as CSV",
	Long: `Fetch all ten result pages for the filter flags in parallel and write them as one CSV file.

Pages that fail are skipped. The command fails only when every page fails.`,
	RunE: runExport,
}

var (
	exportFilters filterFlags
	exportOut     string
)

func init() {
	exportFilters.register(exportCmd, false)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file; \"-\" writes to stdout (default <platform>_profiles.csv)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	f, err := exportFilters.filterSet()
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	artifact, err := a.exporter.Export(ctx, f)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if exportOut == "-" {
		_, err := cmd.OutOrStdout().Write(append(artifact.Data, '\n'))
		return err
	}

	path := exportOut
	if path == "" {
		path = artifact.Filename
	}
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintExportSummary(path, artifact.Rows)
	return nil
}
