// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

const (
	// DefaultInput is the wallet export read when no input is configured.
	DefaultInput = "kwallet.xml"

	// DefaultFolder is the wallet folder that holds password entries.
	DefaultFolder = "Passwords"

	// DefaultMissingText is written for entries that carry no text, for
	// compatibility with files produced by earlier kwallet migrations.
	DefaultMissingText = "None"
)

// ExtractConfig holds settings for an extraction run.
type ExtractConfig struct {
	// Input is the path to the exported wallet XML (default "kwallet.xml").
	Input string `json:"input" yaml:"input"`

	// Folder selects the wallet folder whose password entries are extracted
	// (default "Passwords").
	Folder string `json:"folder" yaml:"folder"`

	// OutDir is the directory plaintext files are written into (default ".").
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// MissingText is written in place of an absent entry text (default "None").
	MissingText string `json:"missing_text" yaml:"missing_text"`

	// DryRun prints keys without writing any file.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
}

// DefaultExtractConfig returns kwallet.xml, folder Passwords, the current
// directory, and "None" for absent text.
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{
		Input:       DefaultInput,
		Folder:      DefaultFolder,
		OutDir:      ".",
		MissingText: DefaultMissingText,
	}
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
// MissingText is left alone since an empty placeholder is a valid setting;
// start from DefaultExtractConfig to get "None".
func (c ExtractConfig) WithDefaults() ExtractConfig {
	if c.Input == "" {
		c.Input = DefaultInput
	}
	if c.Folder == "" {
		c.Folder = DefaultFolder
	}
	if c.OutDir == "" {
		c.OutDir = "."
	}
	return c
}

// LedgerConfig holds settings for the optional run ledger.
type LedgerConfig struct {
	// Path is the SQLite database file. Empty disables the ledger.
	Path string `json:"path" yaml:"path"`
}

// Enabled reports whether a ledger database is configured.
func (c LedgerConfig) Enabled() bool {
	return c.Path != ""
}
