// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/upa-url/tools/internal/wpt"
	"github.com/upa-url/tools/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "upa-tools/0.1"
	defaultHistoryDB = ".upa-tools/wpt-sync.db"
)

// defaultWPTFiles are the download helper scripts carrying the pinned hash.
var defaultWPTFiles = []string{
	"test/download-wpt.bat",
	"test/download-wpt.sh",
}

var wptCmd = &cobra.Command{
	Use:   "wpt",
	Short: "Manage the pinned web-platform-tests commit",
}

var wptSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the pinned WPT commit hash in the download scripts",
	Long: `Sync queries the GitHub API for the latest commit touching the url/
directory of web-platform-tests/wpt and splices its hash into the
HASH= token of the download helper scripts. Each run is recorded in a
local history database unless --db is set to an empty string.`,
	RunE: runWPTSync,
}

var wptHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded WPT sync runs, newest first",
	RunE:  runWPTHistory,
}

func init() {
	wptSyncCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	wptSyncCmd.Flags().StringSlice("file", nil, "script file to patch (repeatable; default test/download-wpt.{bat,sh})")
	wptSyncCmd.Flags().String("db", defaultHistoryDB, "sync-history database path (empty disables history)")
	wptHistoryCmd.Flags().String("db", defaultHistoryDB, "sync-history database path")
	wptHistoryCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	wptCmd.AddCommand(wptSyncCmd)
	wptCmd.AddCommand(wptHistoryCmd)
	rootCmd.AddCommand(wptCmd)
}

func runWPTSync(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	files, _ := cmd.Flags().GetStringSlice("file")
	if len(files) == 0 {
		files = defaultWPTFiles
	}
	dbPath, _ := cmd.Flags().GetString("db")

	cfg := types.WPTConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Files:     files,
		HistoryDB: dbPath,
	}

	var store *wpt.Store
	if cfg.HistoryDB != "" {
		s, err := wpt.OpenStore(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	client := &http.Client{Timeout: cfg.Timeout}

	_, err := wpt.Sync(cmd.Context(), client, cfg, store, os.Stdout)
	return err
}

func runWPTHistory(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := wpt.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sync runs recorded.")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (%d file(s) updated)\n",
			r.FetchedAt.Format(time.RFC3339), r.Hash, r.FilesUpdated)
	}
	return nil
}
