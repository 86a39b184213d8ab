// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wpt keeps the web-platform-tests checkout pinned. The download
// helper scripts embed a HASH=<commit> token; sync fetches the latest
// commit touching the url/ test directory upstream and splices it in.
package wpt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/upa-url/tools/internal/httputil"
	"github.com/upa-url/tools/pkg/types"
)

// githubAPIBase is the GitHub REST endpoint. Declared as a var so tests
// can substitute an httptest server.
var githubAPIBase = "https://api.github.com"

const (
	wptRepo = "web-platform-tests/wpt"
	wptPath = "/url"
)

// hashRe matches the pinned commit token in a download helper script.
var hashRe = regexp.MustCompile(`HASH=([0-9a-f]+)`)

// commit is the part of the GitHub commit object this tool reads.
type commit struct {
	SHA string `json:"sha"`
}

// LatestCommit returns the hash of the newest upstream commit that touched
// the url/ directory of the WPT repository.
func LatestCommit(ctx context.Context, client *http.Client, cfg types.WPTConfig) (string, error) {
	params := url.Values{
		"sha":      {"master"},
		"path":     {wptPath},
		"per_page": {"1"},
	}
	reqURL := fmt.Sprintf("%s/repos/%s/commits?%s", githubAPIBase, wptRepo, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("GitHub API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned HTTP %d", resp.StatusCode)
	}

	var commits []commit
	if err := json.NewDecoder(resp.Body).Decode(&commits); err != nil {
		return "", fmt.Errorf("parsing GitHub response: %w", err)
	}
	if len(commits) == 0 || commits[0].SHA == "" {
		return "", fmt.Errorf("GitHub API returned no commits for %s%s", wptRepo, wptPath)
	}
	return commits[0].SHA, nil
}

// eolFor picks the line ending a helper script is written with. Windows
// batch files keep CRLF, everything else LF.
func eolFor(path string) string {
	if strings.HasSuffix(path, ".bat") {
		return "\r\n"
	}
	return "\n"
}

// UpdateHashInFile splices newHash into the HASH= token of the script at
// path, rewriting the file with eol line endings. It reports whether the
// file changed; a file already at newHash is left untouched.
func UpdateHashInFile(path, eol, newHash string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	loc := hashRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return false, fmt.Errorf("no HASH= token in %s", path)
	}
	if text[loc[2]:loc[3]] == newHash {
		return false, nil
	}

	text = text[:loc[2]] + newHash + text[loc[3]:]
	if eol != "\n" {
		text = strings.ReplaceAll(text, "\n", eol)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// Result summarizes one sync run.
type Result struct {
	Hash         string
	FilesUpdated int
}

// Sync fetches the latest upstream hash and patches every configured
// helper script. The run is recorded in the history store when one is
// given. Progress lines go to w.
func Sync(ctx context.Context, client *http.Client, cfg types.WPTConfig, store *Store, w io.Writer) (Result, error) {
	hash, err := LatestCommit(ctx, client, cfg)
	if err != nil {
		return Result{}, err
	}
	fmt.Fprintln(w, "Latest commit hash:", hash)

	res := Result{Hash: hash}
	for _, file := range cfg.Files {
		updated, err := UpdateHashInFile(file, eolFor(file), hash)
		if err != nil {
			return res, err
		}
		if updated {
			fmt.Fprintln(w, "Updated file:", file)
			res.FilesUpdated++
		} else {
			fmt.Fprintln(w, "Up to date:", file)
		}
	}

	if store != nil {
		if err := store.Record(hash, res.FilesUpdated); err != nil {
			return res, err
		}
	}
	return res, nil
}
