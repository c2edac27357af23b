package main

import (
	"github.com/jonathan/leadgen/internal/observability"
	"github.com/jonathan/leadgen/internal/types"
	"github.com/spf13/cobra"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List the supported platforms",
	Run: func(cmd *cobra.Command, _ []string) {
		observability.NewPrinter(cmd.OutOrStdout()).PrintPlatforms(types.PlatformCatalog())
	},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}
