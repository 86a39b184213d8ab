// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/upa-url/tools/internal/extract"
	"github.com/upa-url/tools/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <output-dir> <markdown-file>...",
	Short: "Extract compilable C++ examples from Markdown documentation",
	Long: `Extract scans fenced cpp blocks in the given Markdown files. Blocks that
start with an #include line and contain a main function become standalone
example-<N>.cpp files; all other blocks are wrapped into generated
functions and combined into one examples.cpp program.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("manifest", "", "write a YAML summary of the run to this path")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	manifest, _ := cmd.Flags().GetString("manifest")

	cfg := types.ExtractConfig{
		OutDir:       args[0],
		ManifestFile: manifest,
	}

	fmt.Fprintln(os.Stdout, "Output directory:", cfg.OutDir)

	ex := extract.New(cfg)
	for _, mdPath := range args[1:] {
		if err := ex.ExtractFile(mdPath, os.Stdout); err != nil {
			return err
		}
	}
	return ex.Finalize(os.Stdout)
}
