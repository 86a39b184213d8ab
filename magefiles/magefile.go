//go:build mage

// Package main contains Mage build targets for upa-tools developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "upa-tools"
	cmdPkg  = "./cmd/upa-tools"

	examplesDir = "build/examples"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Examples extracts the documentation code examples into build/examples/.
// The docs CI compiles the result against the library.
func Examples() error {
	mg.Deps(Build)

	if err := os.MkdirAll(examplesDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", examplesDir, err)
	}

	mdFiles, err := filepath.Glob("docs/*.md")
	if err != nil {
		return err
	}
	args := append([]string{"extract", examplesDir, "README.md"}, mdFiles...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Clean removes build outputs.
func Clean() error {
	for _, dir := range []string{binDir, "build"} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}
