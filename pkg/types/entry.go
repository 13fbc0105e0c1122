// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Entry is a password entry resolved from a wallet folder.
type Entry struct {
	// Position is the zero-based index of the entry in document order.
	Position int `json:"position" yaml:"position"`

	// Name is the entry's name attribute as stored in the wallet.
	Name string `json:"name" yaml:"name"`

	// Key is Name with spaces and slashes replaced by underscores. It is
	// used as the output filename.
	Key string `json:"key" yaml:"key"`

	// Text is the secret value. It is only meaningful when HasText is true.
	Text string `json:"-" yaml:"-"`

	// HasText reports whether the wallet element carried any text.
	HasText bool `json:"has_text" yaml:"has_text"`
}

// Content returns the bytes written to the entry's output file. Entries
// without text produce missingText.
func (e Entry) Content(missingText string) string {
	if !e.HasText {
		return missingText
	}
	return e.Text
}

// VerifyStatus is the outcome of comparing one output file with the wallet.
type VerifyStatus string

const (
	VerifyOK       VerifyStatus = "ok"
	VerifyMissing  VerifyStatus = "missing"
	VerifyMismatch VerifyStatus = "mismatch"
)

// Record describes what an extraction did with one entry. It never holds
// the secret itself.
type Record struct {
	Entry `yaml:",inline"`

	// Size is the number of bytes written for the entry.
	Size int `json:"size" yaml:"size"`

	// Overwritten is set when a later entry in document order shares the
	// same key and replaced this entry's file.
	Overwritten bool `json:"overwritten" yaml:"overwritten"`
}
