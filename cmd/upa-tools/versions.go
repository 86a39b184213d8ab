// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upa-url/tools/internal/docindex"
)

var versionsCmd = &cobra.Command{
	Use:   "versions <directory> <git-ref>",
	Short: "Register a git ref in the published-docs version index",
	Long: `Versions updates versions.txt in the given directory from a git ref.
A push to main registers the "main" entry; a release tag like v1.2.3
registers "v1.2:v1.2.3". Other refs are ignored. The file stays sorted
with main first and released versions newest to oldest.

The registered docs directory is printed so CI can use it as the publish
target; nothing is printed for ignored refs.`,
	Args: cobra.ExactArgs(2),
	RunE: runVersions,
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	docsDir, err := docindex.Update(args[0], args[1])
	if err != nil {
		return err
	}
	if docsDir != "" {
		fmt.Fprintln(cmd.OutOrStdout(), docsDir)
	}
	return nil
}
