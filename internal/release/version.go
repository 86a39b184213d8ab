// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package release bumps the library's three-part version across the
// version header and the README install instructions.
package release

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/upa-url/tools/pkg/types"
)

// PartCount is the number of dotted version components.
const PartCount = 3

const versionPattern = `[0-9]+\.[0-9]+\.[0-9]+`

// docVersionRe matches a version token in documentation, preceded by a
// "v" or "@" sigil that is kept on substitution.
var docVersionRe = regexp.MustCompile(`[v@](` + versionPattern + `)`)

// Part is one numeric version component as found in the header,
// e.g. {Key: "MAJOR", Value: 1}.
type Part struct {
	Key   string
	Value int
}

// Version is the ordered list of parts, in header order (major first).
type Version []Part

// String joins the part values with dots, e.g. "1.2.3".
func (v Version) String() string {
	strs := make([]string, len(v))
	for i, p := range v {
		strs[i] = fmt.Sprintf("%d", p.Value)
	}
	return strings.Join(strs, ".")
}

// Bump increments part i (0-based) and zeroes every later part.
func (v Version) Bump(i int) Version {
	out := make(Version, len(v))
	copy(out, v)
	out[i].Value++
	for j := i + 1; j < len(out); j++ {
		out[j].Value = 0
	}
	return out
}

// numRe matches a numeric part macro line, capturing the part name and value.
func numRe(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`#define[ \t]+` + prefix + `_([A-Z]+)[ \t]+([0-9]+)`)
}

// strRe matches the composed string macro line, capturing the version.
func strRe(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`#define[ \t]+` + prefix + `[ \t]+"(` + versionPattern + `)"`)
}

// ReadVersion scans the version header for the numeric part macros and
// returns them in order of appearance. The header must define exactly
// PartCount parts.
func ReadVersion(cfg types.ReleaseConfig) (Version, error) {
	f, err := os.Open(cfg.HeaderFile)
	if err != nil {
		return nil, fmt.Errorf("opening version header %s: %w", cfg.HeaderFile, err)
	}
	defer f.Close()

	re := numRe(cfg.MacroPrefix)
	var v Version

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := re.FindStringSubmatch(scanner.Text()); m != nil {
			var val int
			fmt.Sscanf(m[2], "%d", &val)
			v = append(v, Part{Key: m[1], Value: val})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading version header %s: %w", cfg.HeaderFile, err)
	}

	if len(v) != PartCount {
		return nil, fmt.Errorf("version header %s: found %d version parts, want %d",
			cfg.HeaderFile, len(v), PartCount)
	}
	return v, nil
}

// UpdateHeader rewrites the version header in place, splicing the new part
// values into the numeric macro lines and the joined version into the
// string macro line. All other bytes are preserved.
func UpdateHeader(cfg types.ReleaseConfig, v Version) error {
	parts := make(map[string]int, len(v))
	for _, p := range v {
		parts[p.Key] = p.Value
	}

	numbers := numRe(cfg.MacroPrefix)
	composed := strRe(cfg.MacroPrefix)

	rewrite := func(line string) string {
		if loc := numbers.FindStringSubmatchIndex(line); loc != nil {
			key := line[loc[2]:loc[3]]
			if val, ok := parts[key]; ok {
				return line[:loc[4]] + fmt.Sprintf("%d", val) + line[loc[5]:]
			}
			return line
		}
		if loc := composed.FindStringSubmatchIndex(line); loc != nil {
			return line[:loc[2]] + v.String() + line[loc[3]:]
		}
		return line
	}

	return rewriteLines(cfg.HeaderFile, rewrite)
}

// UpdateReadme substitutes the version token on lines inside ```cmake
// fenced blocks of the README. Lines outside those blocks are untouched.
func UpdateReadme(cfg types.ReleaseConfig, v Version) error {
	inCmake := false

	rewrite := func(line string) string {
		trimmed := strings.TrimRight(line, " \t")
		if !inCmake {
			if trimmed == "```cmake" {
				inCmake = true
			}
			return line
		}
		if trimmed == "```" {
			inCmake = false
			return line
		}
		if loc := docVersionRe.FindStringSubmatchIndex(line); loc != nil {
			return line[:loc[2]] + v.String() + line[loc[3]:]
		}
		return line
	}

	return rewriteLines(cfg.ReadmeFile, rewrite)
}

// rewriteLines reads path, applies fn to every line, and writes the result
// back. Line endings are normalized to LF, matching the files this tool
// maintains.
func rewriteLines(path string, fn func(string) string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	var out strings.Builder
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		out.WriteString(fn(scanner.Text()))
		out.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		f.Close()
		return fmt.Errorf("reading %s: %w", path, err)
	}
	f.Close()

	if err := os.WriteFile(path, []byte(out.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
