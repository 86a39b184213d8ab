// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/upa-url/tools/internal/release"
	"github.com/upa-url/tools/pkg/types"
)

const (
	defaultHeaderFile  = "include/upa/url_version.h"
	defaultReadmeFile  = "README.md"
	defaultMacroPrefix = "UPA_URL_VERSION"
)

var bumpCmd = &cobra.Command{
	Use:   "bump",
	Short: "Increment the library version in the header and README",
	Long: `Bump reads the three-part version from the version header, asks which
part to increment, and rewrites the header macros and the version tokens
inside the README cmake blocks. Lower parts reset to zero.

Use --part and --yes for non-interactive runs.`,
	RunE: runBump,
}

func init() {
	bumpCmd.Flags().String("header", "", "version header file (default "+defaultHeaderFile+")")
	bumpCmd.Flags().String("readme", "", "README file (default "+defaultReadmeFile+")")
	bumpCmd.Flags().Int("part", 0, "version part to increment, 1=major 2=minor 3=patch (default: ask)")
	bumpCmd.Flags().Bool("yes", false, "apply without confirmation")

	rootCmd.AddCommand(bumpCmd)
}

func runBump(cmd *cobra.Command, args []string) error {
	header, _ := cmd.Flags().GetString("header")
	if header == "" {
		header = stringSetting("release.header_file", defaultHeaderFile)
	}
	readme, _ := cmd.Flags().GetString("readme")
	if readme == "" {
		readme = stringSetting("release.readme_file", defaultReadmeFile)
	}
	part, _ := cmd.Flags().GetInt("part")
	assumeYes, _ := cmd.Flags().GetBool("yes")

	cfg := types.ReleaseConfig{
		HeaderFile:  header,
		ReadmeFile:  readme,
		MacroPrefix: stringSetting("release.macro_prefix", defaultMacroPrefix),
	}

	return release.Run(cfg, os.Stdin, os.Stdout, part-1, assumeYes)
}

// stringSetting resolves a config value with a built-in default.
func stringSetting(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}
