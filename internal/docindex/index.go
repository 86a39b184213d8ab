// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docindex maintains versions.txt, the index the documentation
// site uses to offer one docs tree per published version.
//
// Each line is "<dir>" or "<dir>:<version>", where dir is the docs
// directory ("main" for the development branch, "v1.2" for releases) and
// version is the full tag. The file is kept sorted: main first, then
// released versions from newest to oldest.
package docindex

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const indexFile = "versions.txt"

// tagRe matches release tags like v1.2 or v1.2.3.
var tagRe = regexp.MustCompile(`^v[0-9]+(\.[0-9]+)+$`)

// Update applies a git ref to the versions index in dir. Pushes to main
// register the "main" entry; release tags register "<major.minor>:<tag>".
// Any other ref is a no-op. It returns the docs directory that was
// registered, or "" when nothing changed.
func Update(dir, gitRef string) (string, error) {
	switch {
	case strings.HasPrefix(gitRef, "refs/heads/"):
		branch := strings.TrimPrefix(gitRef, "refs/heads/")
		if branch != "main" {
			return "", nil
		}
		return "main", updateEntry(filepath.Join(dir, indexFile), "main", "main")

	case strings.HasPrefix(gitRef, "refs/tags/"):
		tag := strings.TrimPrefix(gitRef, "refs/tags/")
		if !tagRe.MatchString(tag) {
			return "", nil
		}
		pieces := strings.Split(tag, ".")
		docsDir := strings.Join(pieces[:min(2, len(pieces))], ".")
		return docsDir, updateEntry(filepath.Join(dir, indexFile), docsDir, tag)
	}
	return "", nil
}

// updateEntry replaces or appends the line for docsDir and rewrites the
// file in sorted order.
func updateEntry(path, docsDir, version string) error {
	line := docsDir
	if docsDir != version {
		line = docsDir + ":" + version
	}

	var lines []string
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	} else {
		lines = splitLines(string(data))
	}

	found := false
	for i := range lines {
		if entryDir(lines[i]) == docsDir {
			lines[i] = line
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, line)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return sortKey(lines[i]) < sortKey(lines[j])
	})

	var out strings.Builder
	for _, l := range lines {
		out.WriteString(l)
		out.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(out.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// entryDir returns the directory portion of an index line.
func entryDir(line string) string {
	dir, _, _ := strings.Cut(line, ":")
	return dir
}

// sortKey orders index lines: main first, then versions descending. The
// reciprocal of the weighted version number makes a plain ascending sort
// put larger versions earlier.
func sortKey(line string) float64 {
	dir := entryDir(line)
	if dir == "main" {
		return 0
	}
	dir = strings.TrimPrefix(dir, "v")
	pieces := strings.Split(dir, ".")

	div := 0
	weights := []int{1000000, 1000, 1}
	for i, piece := range pieces {
		if i >= len(weights) {
			break
		}
		n, err := strconv.Atoi(piece)
		if err != nil {
			return 1 // malformed entries sort last
		}
		div += weights[i] * n
	}
	if div == 0 {
		return 1
	}
	return 1 / float64(div)
}

// splitLines splits on newlines, dropping a trailing empty line.
func splitLines(s string) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
