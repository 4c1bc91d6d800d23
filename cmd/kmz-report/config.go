// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kmz-report/internal/render"
	"github.com/pdiddy/kmz-report/pkg/types"
)

const (
	envPrefix = "KMZ_REPORT"

	defaultFormat      = types.FormatXLSXLinked
	defaultOutDir      = "."
	defaultMultipleKML = types.MultipleKMLFirst
	defaultPageSize    = types.PageLetter
)

// configureEnv maps nested keys to environment variables, so render.format
// reads KMZ_REPORT_RENDER_FORMAT.
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// bindFlags binds each flag of cmd to its config key. Binding happens when
// the command runs, so commands sharing a key do not steal each other's
// flags.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", flag)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// loadConfig decodes the merged flag, environment and file settings.
func loadConfig(v *viper.Viper) (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if !cfg.Extraction.MultipleKML.Valid() {
		return cfg, fmt.Errorf("invalid extraction.multiple_kml %q: use first or error", cfg.Extraction.MultipleKML)
	}
	return cfg, nil
}

// addExtractionFlags registers the flags shared by convert and extract.
func addExtractionFlags(cmd *cobra.Command) {
	cmd.Flags().String("kml-path", "", "where to write the extracted KML (default: report path with .kml extension)")
	cmd.Flags().String("multiple-kml", string(defaultMultipleKML), "archives with several .kml entries: first or error")
}

// addRenderFlags registers the report flags of convert.
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", string(defaultFormat), "report format: "+formatList())
	cmd.Flags().String("link-template", "", "map link URL template with {lat} and {lon} placeholders")
	cmd.Flags().String("title", render.DefaultTitle, "report title")
	cmd.Flags().String("sheet-name", render.DefaultSheetName, "worksheet name for xlsx formats")
	cmd.Flags().String("page-size", string(defaultPageSize), "PDF page size: Letter or A4")
	cmd.Flags().String("font-file", "", "TrueType font embedded in PDF output for full Unicode text")
}

func formatList() string {
	names := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
