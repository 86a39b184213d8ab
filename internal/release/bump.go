// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package release

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/upa-url/tools/pkg/types"
)

// printVersion lists the version parts, numbered for the prompt.
func printVersion(w io.Writer, label string, v Version) {
	fmt.Fprintln(w, label)
	for i, p := range v {
		fmt.Fprintf(w, " %d) %s: %d\n", i+1, p.Key, p.Value)
	}
}

// Run drives an interactive bump: show the current version, ask which part
// to increment, confirm, then rewrite the header and README. An empty or
// out-of-range answer aborts without touching any file. part >= 0 skips the
// first prompt and assumeYes skips the confirmation, for CI use.
func Run(cfg types.ReleaseConfig, in io.Reader, out io.Writer, part int, assumeYes bool) error {
	fmt.Fprintf(out, "Reading the version from %s\n", cfg.HeaderFile)
	current, err := ReadVersion(cfg)
	if err != nil {
		return err
	}
	printVersion(out, "Current version:", current)

	reader := bufio.NewReader(in)

	if part < 0 {
		fmt.Fprintf(out, "Which version number to increment? (1...%d): ", PartCount)
		answer, err := readLine(reader)
		if err != nil {
			return err
		}
		if answer == "" {
			return nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > PartCount {
			return nil
		}
		part = n - 1
	} else if part >= PartCount {
		return fmt.Errorf("version part %d out of range 1...%d", part+1, PartCount)
	}

	next := current.Bump(part)
	printVersion(out, "New version:", next)

	if !assumeYes {
		fmt.Fprint(out, "Update files with new version? (Y/N): ")
		answer, err := readLine(reader)
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") {
			return nil
		}
	}

	if err := UpdateHeader(cfg, next); err != nil {
		return err
	}
	fmt.Fprintln(out, "Updated file:", cfg.HeaderFile)

	if err := UpdateReadme(cfg, next); err != nil {
		return err
	}
	fmt.Fprintln(out, "Updated file:", cfg.ReadmeFile)
	return nil
}

// readLine returns the next input line, trimmed. EOF with no input reads
// as an empty answer so a closed stdin aborts instead of erroring.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
