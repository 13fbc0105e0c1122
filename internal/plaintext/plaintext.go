// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plaintext reads and writes a directory of one-secret-per-file
// plaintext files. Each file represents one secret: the filename is the
// key and the file contents are the value, byte for byte.
//
// This is the layout the downstream encryption tool consumes.
package plaintext

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileMode is the permission used for every secret file.
const FileMode fs.FileMode = 0o600

// Write creates or truncates dir/key and writes value to it. The file is
// closed before Write returns.
func Write(dir, key, value string) error {
	path := filepath.Join(dir, key)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FileMode)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	_, writeErr := f.WriteString(value)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", path, closeErr)
	}
	return nil
}

// Load reads dir/key for every key and returns a map of key to contents.
// Keys with no regular file behind them, including keys that resolve to a
// directory such as "" or "..", are returned in missing rather than as an
// error. Any other read failure aborts.
func Load(dir string, keys []string) (values map[string]string, missing []string, err error) {
	values = make(map[string]string, len(keys))
	reported := make(map[string]bool)
	for _, key := range keys {
		if _, seen := values[key]; seen || reported[key] {
			continue
		}
		path := filepath.Join(dir, key)
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
			missing = append(missing, key)
			reported[key] = true
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading secret %s: %w", path, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading secret %s: %w", path, err)
		}
		values[key] = string(data)
	}
	return values, missing, nil
}
