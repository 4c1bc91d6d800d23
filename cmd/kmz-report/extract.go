// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kmz-report/internal/archive"
)

var extractKeys = map[string]string{
	"kml-path":     "output.kml_path",
	"multiple-kml": "extraction.multiple_kml",
}

var extractCmd = &cobra.Command{
	Use:   "extract <kmz>",
	Short: "Extract the KML document from a KMZ archive",
	Long: `Extract copies the first .kml entry of the archive, byte for byte, to
--kml-path (default: the archive path with a .kml extension). With --list it
prints the .kml entries in archive order instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	addExtractionFlags(extractCmd)
	extractCmd.Flags().Bool("list", false, "list the .kml entries without extracting")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	kmz := args[0]

	if list, _ := cmd.Flags().GetBool("list"); list {
		names, err := archive.List(kmz)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	}

	v := viper.GetViper()
	if err := bindFlags(v, cmd, extractKeys); err != nil {
		return err
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	kmlPath := cfg.Output.KMLPath
	if kmlPath == "" {
		kmlPath = strings.TrimSuffix(kmz, filepath.Ext(kmz)) + ".kml"
	}

	entry, err := archive.Extract(kmz, kmlPath, cfg.Extraction)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "extracted: %s -> %s (%d bytes)\n", entry.Name, kmlPath, entry.Size)
	if len(entry.Ignored) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: ignoring additional KML entries: %s\n", strings.Join(entry.Ignored, ", "))
	}
	return nil
}
