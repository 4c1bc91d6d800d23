package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kmz-report/internal/render"
	"github.com/pdiddy/kmz-report/pkg/types"
)

var formatDescriptions = map[types.Format]string{
	types.FormatXLSX:       "spreadsheet with raw coordinates",
	types.FormatXLSXLinked: "spreadsheet with Google Earth links",
	types.FormatPDF:        "document with one block per placemark",
	types.FormatSQLite:     "SQLite database, table placemarks",
	types.FormatYAML:       "YAML record list",
	types.FormatJSON:       "JSON record list",
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the report formats",
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range render.Formats() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-6s %s\n", f, f.Extension(), formatDescriptions[f])
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
