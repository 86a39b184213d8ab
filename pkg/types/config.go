// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "upa-tools/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ExtractConfig holds settings for the example-extraction stage.
type ExtractConfig struct {
	// OutDir is the directory extracted example files are written to.
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// ManifestFile is an optional path for a YAML summary of the run.
	// Empty disables the manifest.
	ManifestFile string `json:"manifest_file,omitempty" yaml:"manifest_file,omitempty"`
}

// ReleaseConfig holds settings for the version-bump stage.
type ReleaseConfig struct {
	// HeaderFile is the C++ header carrying the version macros.
	HeaderFile string `json:"header_file" yaml:"header_file"`

	// ReadmeFile is the document whose cmake blocks embed the version.
	ReadmeFile string `json:"readme_file" yaml:"readme_file"`

	// MacroPrefix is the version macro name, e.g. "UPA_URL_VERSION".
	// Numeric part macros are <MacroPrefix>_MAJOR etc.
	MacroPrefix string `json:"macro_prefix" yaml:"macro_prefix"`
}

// WPTConfig holds settings for the WPT hash-sync stage.
type WPTConfig struct {
	HTTPConfig `yaml:",inline"`

	// Files lists the download-helper scripts carrying the HASH= token.
	// Line endings are chosen per file extension (.bat is CRLF).
	Files []string `json:"files" yaml:"files"`

	// HistoryDB is the path of the sync-history SQLite database.
	// Empty disables history recording.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty"`

	// MaxRetries is the number of retries on rate-limited API responses.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}
