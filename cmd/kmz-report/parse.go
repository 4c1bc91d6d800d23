// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/kmz-report/internal/kml"
	"github.com/pdiddy/kmz-report/internal/render"
	"github.com/pdiddy/kmz-report/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse <kml>",
	Short: "Print the placemarks of a KML file",
	Long: `Parse reads a KML 2.2 document and prints one record per placemark, in
document order, with its map link. Output is YAML unless --json is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("json", false, "output records as JSON")
	parseCmd.Flags().String("link-template", "", "map link URL template with {lat} and {lon} placeholders")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	records, err := kml.ParseFile(args[0])
	if err != nil {
		return err
	}

	format := types.FormatYAML
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		format = types.FormatJSON
	}
	tpl, _ := cmd.Flags().GetString("link-template")

	rf, err := render.NewRecordFile(types.RenderConfig{Format: format, LinkTemplate: tpl})
	if err != nil {
		return err
	}
	data, err := rf.Marshal(records)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
