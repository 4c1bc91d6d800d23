// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kmz-report CLI. Each pipeline
// stage is a subcommand; convert runs them all.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the kmz-report CLI.
var rootCmd = &cobra.Command{
	Use:   "kmz-report",
	Short: "Turn KMZ placemarks into spreadsheets, PDFs and data files",
	Long: `kmz-report extracts the KML document from a KMZ archive, reads its
placemarks (name, description, coordinates) and writes them as a report.

Stages are available on their own: extract pulls the KML out of an archive,
parse prints the placemarks of a KML file. convert runs the whole pipeline
for one or more archives.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./kmz-report.yaml or ~/.config/kmz-report/kmz-report.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kmz-report")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kmz-report"))
		}
	}

	configureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: reading config %s: %v\n", cfgFile, err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
