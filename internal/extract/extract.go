// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract writes the password entries of a wallet folder to
// plaintext files, one file per entry, named by the entry's sanitized key.
//
// Entries are processed strictly in document order. Each file is opened,
// written, and closed before the next entry is touched, and the first
// failure aborts the rest of the run. Files written before the failure
// are left in place.
package extract

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/kwallet-extract/internal/logger"
	"github.com/pdiddy/kwallet-extract/internal/plaintext"
	"github.com/pdiddy/kwallet-extract/internal/wallet"
	"github.com/pdiddy/kwallet-extract/pkg/types"
)

// Summary holds the outcome of an extraction run.
type Summary struct {
	// Records lists every processed entry in document order.
	Records []types.Record

	// Written is the number of write operations performed (zero on a dry run).
	Written int

	// Overwritten counts entries whose file was replaced by a later entry
	// with the same key.
	Overwritten int
}

// Keys returns the number of distinct output files the run produced.
func (s Summary) Keys() int {
	return len(s.Records) - s.Overwritten
}

// Run extracts every password entry of cfg.Folder from wl. For each entry
// it prints the sanitized key on its own line to w and then writes the
// entry's content to cfg.OutDir/key. An entry without text is written as
// cfg.MissingText.
//
// The returned Summary covers the entries processed before any error.
func Run(ctx context.Context, wl *wallet.Wallet, cfg types.ExtractConfig, w io.Writer, log *logger.Logger) (Summary, error) {
	cfg = cfg.WithDefaults()

	var summary Summary
	seen := make(map[string]int)

	for _, elem := range wl.Elements(cfg.Folder) {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		entry, err := elem.Resolve()
		if err != nil {
			return summary, err
		}

		fmt.Fprintln(w, entry.Key)

		content := entry.Content(cfg.MissingText)
		if !cfg.DryRun {
			if err := plaintext.Write(cfg.OutDir, entry.Key, content); err != nil {
				return summary, fmt.Errorf("entry %d: %w", entry.Position, err)
			}
			summary.Written++
		}

		if prev, ok := seen[entry.Key]; ok {
			summary.Records[prev].Overwritten = true
			summary.Overwritten++
			log.Debug().Str("key", entry.Key).Int("previous", prev).Int("position", entry.Position).
				Msg("key collision, replacing earlier entry")
		}
		seen[entry.Key] = len(summary.Records)

		if !entry.HasText {
			log.Debug().Str("key", entry.Key).Msg("entry has no text, writing placeholder")
		}

		summary.Records = append(summary.Records, types.Record{
			Entry: entry,
			Size:  len(content),
		})
	}

	return summary, nil
}

// Plan resolves the entries of folder without writing anything and marks
// the ones a real run would overwrite.
func Plan(wl *wallet.Wallet, folder string, missingText string) ([]types.Record, error) {
	entries, err := wl.Entries(folder)
	if err != nil {
		return nil, err
	}

	records := make([]types.Record, len(entries))
	last := make(map[string]int, len(entries))
	for i, e := range entries {
		records[i] = types.Record{Entry: e, Size: len(e.Content(missingText))}
		if prev, ok := last[e.Key]; ok {
			records[prev].Overwritten = true
		}
		last[e.Key] = i
	}
	return records, nil
}
