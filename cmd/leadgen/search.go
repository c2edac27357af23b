package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/leadgen/internal/observability"
	"github.com/jonathan/leadgen/internal/types"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one search and print a page of profiles",
	Long: `Build a platform-scoped query from the filter flags, run it against the Custom Search API
and print one normalized page of results.

Search failures print an empty page, the same as the dashboard. Use --strict to see the error instead.`,
	RunE: runSearch,
}

var (
	searchFilters filterFlags
	searchJSON    bool
	searchStrict  bool
)

func init() {
	searchFilters.register(searchCmd, true)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print the page as JSON")
	searchCmd.Flags().BoolVar(&searchStrict, "strict", false, "Fail on search errors instead of printing an empty page")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	f, err := searchFilters.filterSet()
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	var page *types.ResultPage
	if searchStrict {
		page, err = a.gateway.FetchPage(ctx, f)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
	} else {
		page = a.gateway.Search(ctx, f)
	}

	if searchJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintResultPage(f.Platform, page)
	return nil
}
