// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kmz-report/internal/pipeline"
	"github.com/pdiddy/kmz-report/internal/render"
)

var convertKeys = map[string]string{
	"format":        "render.format",
	"link-template": "render.link_template",
	"title":         "render.title",
	"sheet-name":    "render.sheet_name",
	"page-size":     "render.page_size",
	"font-file":     "render.font_file",
	"output":        "output.path",
	"out-dir":       "output.dir",
	"kml-path":      "output.kml_path",
	"multiple-kml":  "extraction.multiple_kml",
}

var convertCmd = &cobra.Command{
	Use:   "convert <kmz>...",
	Short: "Convert KMZ archives into placemark reports",
	Long: `Convert extracts the KML of each archive, reads its placemarks and
renders them in the chosen format. With one archive, --output names the
report; otherwise each report is written to --out-dir as <basename>.<ext>
and the extracted KML is kept next to it.

Archives are processed in order. A failing archive does not stop the batch,
but the command exits non-zero.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	addRenderFlags(convertCmd)
	addExtractionFlags(convertCmd)
	convertCmd.Flags().StringP("output", "o", "", "report path (single archive only)")
	convertCmd.Flags().String("out-dir", defaultOutDir, "directory for derived report paths")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd, convertKeys); err != nil {
		return err
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	if len(args) > 1 && (cfg.Output.Path != "" || cfg.Output.KMLPath != "") {
		return fmt.Errorf("--output and --kml-path take a single archive, got %d", len(args))
	}

	r, err := render.New(cfg.Render)
	if err != nil {
		return err
	}

	out, warn := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if len(args) == 1 {
		_, err := pipeline.Run(args[0], cfg, r, out, warn)
		return err
	}

	result := pipeline.RunBatch(args, cfg, r, out, warn)
	if result.HasFailures() {
		return fmt.Errorf("%d of %d archives failed", result.Failed, result.Total())
	}
	return nil
}
