package wpt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upa-url/tools/pkg/types"
)

const (
	oldHash = "0123456789abcdef0123456789abcdef01234567"
	newHash = "fedcba9876543210fedcba9876543210fedcba98"
)

func testWPTConfig() types.WPTConfig {
	return types.WPTConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "upa-tools/test",
		},
	}
}

// commitServer serves a GitHub-style commit listing and swaps the API base
// to itself for the duration of the test.
func commitServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/web-platform-tests/wpt/commits", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		assert.Equal(t, "/url", r.URL.Query().Get("path"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	old := githubAPIBase
	githubAPIBase = ts.URL
	t.Cleanup(func() {
		githubAPIBase = old
		ts.Close()
	})
	return ts
}

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLatestCommit(t *testing.T) {
	ts := commitServer(t, `[{"sha": "`+newHash+`", "commit": {"message": "url: update"}}]`, http.StatusOK)

	hash, err := LatestCommit(context.Background(), ts.Client(), testWPTConfig())
	require.NoError(t, err)
	assert.Equal(t, newHash, hash)
}

func TestLatestCommitEmptyList(t *testing.T) {
	ts := commitServer(t, `[]`, http.StatusOK)

	_, err := LatestCommit(context.Background(), ts.Client(), testWPTConfig())
	assert.ErrorContains(t, err, "no commits")
}

func TestLatestCommitHTTPError(t *testing.T) {
	ts := commitServer(t, `{"message": "Not Found"}`, http.StatusNotFound)

	_, err := LatestCommit(context.Background(), ts.Client(), testWPTConfig())
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestUpdateHashInFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "download-wpt.sh", "#!/bin/sh\nHASH="+oldHash+"\nfetch $HASH\n")

	updated, err := UpdateHashInFile(path, "\n", newHash)
	require.NoError(t, err)
	assert.True(t, updated)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\nHASH="+newHash+"\nfetch $HASH\n", string(data))
}

func TestUpdateHashInFileCRLF(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "download-wpt.bat", "@echo off\r\nset HASH="+oldHash+"\r\n")

	updated, err := UpdateHashInFile(path, "\r\n", newHash)
	require.NoError(t, err)
	assert.True(t, updated)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "@echo off\r\nset HASH="+newHash+"\r\n", string(data))
}

func TestUpdateHashInFileUnchanged(t *testing.T) {
	dir := t.TempDir()
	content := "HASH=" + oldHash + "\n"
	path := writeScript(t, dir, "download-wpt.sh", content)

	updated, err := UpdateHashInFile(path, "\n", oldHash)
	require.NoError(t, err)
	assert.False(t, updated)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestUpdateHashInFileMissingToken(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "download-wpt.sh", "#!/bin/sh\necho no token here\n")

	_, err := UpdateHashInFile(path, "\n", newHash)
	assert.ErrorContains(t, err, "no HASH= token")
}

func TestEolFor(t *testing.T) {
	assert.Equal(t, "\r\n", eolFor("test/download-wpt.bat"))
	assert.Equal(t, "\n", eolFor("test/download-wpt.sh"))
}

func TestSync(t *testing.T) {
	ts := commitServer(t, `[{"sha": "`+newHash+`"}]`, http.StatusOK)

	dir := t.TempDir()
	bat := writeScript(t, dir, "download-wpt.bat", "set HASH="+oldHash+"\r\n")
	sh := writeScript(t, dir, "download-wpt.sh", "HASH="+newHash+"\n") // already current

	cfg := testWPTConfig()
	cfg.Files = []string{bat, sh}

	store, err := OpenStore(filepath.Join(dir, "wpt-sync.db"))
	require.NoError(t, err)
	defer store.Close()

	var out strings.Builder
	res, err := Sync(context.Background(), ts.Client(), cfg, store, &out)
	require.NoError(t, err)

	assert.Equal(t, newHash, res.Hash)
	assert.Equal(t, 1, res.FilesUpdated)
	assert.Contains(t, out.String(), "Latest commit hash: "+newHash)
	assert.Contains(t, out.String(), "Updated file: "+bat)
	assert.Contains(t, out.String(), "Up to date: "+sh)

	records, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, newHash, records[0].Hash)
	assert.Equal(t, 1, records[0].FilesUpdated)
}

func TestSyncWithoutStore(t *testing.T) {
	ts := commitServer(t, `[{"sha": "`+newHash+`"}]`, http.StatusOK)

	dir := t.TempDir()
	sh := writeScript(t, dir, "download-wpt.sh", "HASH="+oldHash+"\n")

	cfg := testWPTConfig()
	cfg.Files = []string{sh}

	res, err := Sync(context.Background(), ts.Client(), cfg, nil, &strings.Builder{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.FilesUpdated)
}
