// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls C++ code samples out of fenced blocks in Markdown
// documentation so the CI can compile them.
//
// A fenced block whose first line is an #include directive is a standalone
// example; if it contains a main function it is written to its own
// example-<N>.cpp file. Any other block is a snippet: its lines are wrapped
// into a generated example_<N>() function and all snippets are combined into
// a single examples.cpp program.
package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/upa-url/tools/pkg/types"
)

const (
	openFence  = "```cpp"
	closeFence = "```"

	includePrefix = "#include"
	mainMarker    = "int main("

	indentUnit = "    "

	combinedFile = "examples.cpp"
)

// commonHeader is prepended to the combined snippet program.
const commonHeader = `
#include "upa/url.h"
#include <iostream>
#include <string>
`

// scanState tracks where in a document the line scanner is.
type scanState int

const (
	// stateOutside: not inside a fenced cpp block.
	stateOutside scanState = iota
	// stateEnter: the open fence was seen; the next line classifies the block.
	stateEnter
	// stateStandalone: inside a block that began with an #include line.
	stateStandalone
	// stateSnippet: inside a block to be wrapped into a generated function.
	stateSnippet
)

// ArtifactKind distinguishes the two output forms in the run manifest.
type ArtifactKind string

const (
	KindStandalone ArtifactKind = "standalone"
	KindSnippet    ArtifactKind = "snippet"
)

// Artifact is one manifest record: an output the run produced.
type Artifact struct {
	File   string       `json:"file" yaml:"file"`
	Source string       `json:"source" yaml:"source"`
	Kind   ArtifactKind `json:"kind" yaml:"kind"`
}

// Manifest summarizes an extraction run.
type Manifest struct {
	Artifacts []Artifact `json:"artifacts" yaml:"artifacts"`

	// DroppedStandalone counts #include-led blocks without a main function.
	// They produce no file; the original tooling dropped them silently.
	DroppedStandalone int `json:"dropped_standalone" yaml:"dropped_standalone"`
}

// Extractor accumulates extraction results across documents. The two
// counters are global for the run and never reused; file numbering and
// snippet numbering are independent.
type Extractor struct {
	cfg types.ExtractConfig

	fileNum    int
	snippetNum int
	combined   strings.Builder

	manifest Manifest
}

// New returns an Extractor writing into cfg.OutDir.
func New(cfg types.ExtractConfig) *Extractor {
	e := &Extractor{cfg: cfg}
	e.combined.WriteString(commonHeader)
	return e
}

// ExtractFile scans one Markdown document. Standalone examples are written
// immediately; snippets are accumulated until Finalize. Progress lines go
// to w. An unreadable document or unwritable output file is fatal.
func (e *Extractor) ExtractFile(mdPath string, w io.Writer) error {
	f, err := os.Open(mdPath)
	if err != nil {
		return fmt.Errorf("opening markdown %s: %w", mdPath, err)
	}
	defer f.Close()

	fmt.Fprintln(w, "Processing Markdown file:", mdPath)

	state := stateOutside
	var region strings.Builder

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw := scanner.Text()
		line := strings.TrimRight(raw, " \t")

		switch {
		case state == stateOutside:
			if line == openFence {
				state = stateEnter
				region.Reset()
			}
		case line == closeFence:
			if err := e.closeRegion(state, region.String(), mdPath, w); err != nil {
				return err
			}
			state = stateOutside
		default:
			if state == stateEnter {
				if strings.HasPrefix(line, includePrefix) {
					state = stateStandalone
				} else {
					state = stateSnippet
				}
			}
			if state == stateSnippet {
				region.WriteString(indentUnit)
			}
			region.WriteString(raw)
			region.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading markdown %s: %w", mdPath, err)
	}
	return nil
}

// closeRegion handles the close fence for the current region. A region still
// in stateEnter was empty and produces nothing.
func (e *Extractor) closeRegion(state scanState, text, mdPath string, w io.Writer) error {
	switch state {
	case stateStandalone:
		if !strings.Contains(text, mainMarker) {
			// Include-only sample, not meant to run on its own.
			e.manifest.DroppedStandalone++
			return nil
		}
		e.fileNum++
		name := fmt.Sprintf("example-%d.cpp", e.fileNum)
		outPath := filepath.Join(e.cfg.OutDir, name)
		fmt.Fprintln(w, " creating:", outPath)
		content := fmt.Sprintf("// Example from: %s\n%s", mdPath, text)
		if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing example %s: %w", outPath, err)
		}
		e.manifest.Artifacts = append(e.manifest.Artifacts, Artifact{
			File:   name,
			Source: mdPath,
			Kind:   KindStandalone,
		})
	case stateSnippet:
		e.snippetNum++
		fmt.Fprintf(&e.combined, "\n// Example from: %s\n", mdPath)
		fmt.Fprintf(&e.combined, "void example_%d() {\n", e.snippetNum)
		e.combined.WriteString(text)
		e.combined.WriteString("}\n")
		e.manifest.Artifacts = append(e.manifest.Artifacts, Artifact{
			File:   combinedFile,
			Source: mdPath,
			Kind:   KindSnippet,
		})
	}
	return nil
}

// Finalize writes the combined snippet program if any snippets were found,
// and the optional run manifest. Call once, after all documents.
func (e *Extractor) Finalize(w io.Writer) error {
	if e.snippetNum > 0 {
		e.combined.WriteString("\nint main() {\n")
		for num := 1; num <= e.snippetNum; num++ {
			fmt.Fprintf(&e.combined, "%sexample_%d();\n", indentUnit, num)
		}
		e.combined.WriteString(indentUnit + "return 0;\n}\n")

		outPath := filepath.Join(e.cfg.OutDir, combinedFile)
		fmt.Fprintln(w, " creating:", outPath)
		if err := os.WriteFile(outPath, []byte(e.combined.String()), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
	}

	if e.cfg.ManifestFile != "" {
		if err := writeManifest(e.cfg.ManifestFile, &e.manifest); err != nil {
			return err
		}
	}
	return nil
}

// writeManifest marshals the run summary to a YAML file.
func writeManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}
