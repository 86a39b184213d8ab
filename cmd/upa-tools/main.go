// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the upa-tools CLI, the maintenance
// tooling for the upa URL-parsing library: documentation example
// extraction, version bumps, the published-docs version index, and the
// WPT test-suite pin.
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

// rootCmd is the base command for the upa-tools CLI.
var rootCmd = &cobra.Command{
	Use:   "upa-tools",
	Short: "Maintenance tooling for the upa URL library",
	Long: `upa-tools bundles the release and documentation chores of the upa URL
library. Each chore is a subcommand: extract compilable examples from the
Markdown docs, bump the library version across the header and README,
maintain the published-docs version index, and refresh the pinned
web-platform-tests commit.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./upa-tools.yaml or ~/.config/upa-tools/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("upa-tools")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "upa-tools"))
		}
	}

	viper.SetEnvPrefix("UPA_TOOLS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
