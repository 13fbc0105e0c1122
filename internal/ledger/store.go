// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps an optional SQLite record of extraction runs.
// For each run it stores where the wallet came from and, per entry, the
// original name, the sanitized key, the number of bytes written, and
// whether a later entry overwrote the file. Secret text is never stored.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/kwallet-extract/pkg/types"
)

// Run describes one recorded extraction.
type Run struct {
	ID        int64     `json:"id" yaml:"id"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	Input     string    `json:"input" yaml:"input"`
	Folder    string    `json:"folder" yaml:"folder"`
	OutDir    string    `json:"out_dir" yaml:"out_dir"`
	Entries   int       `json:"entries" yaml:"entries"`
	Keys      int       `json:"keys" yaml:"keys"`
}

// Store manages the ledger database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the ledger database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.LedgerConfig) (*Store, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("ledger path not configured")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db, path: cfg.Path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			input TEXT NOT NULL,
			folder TEXT NOT NULL,
			out_dir TEXT NOT NULL,
			entry_count INTEGER NOT NULL,
			key_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			entry_key TEXT NOT NULL,
			size INTEGER NOT NULL,
			has_text INTEGER NOT NULL,
			overwritten INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_key ON entries(entry_key)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a run and its entries in one transaction and returns the
// new run ID. run.ID is ignored.
func (s *Store) Record(ctx context.Context, run Run, records []types.Record) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, input, folder, out_dir, entry_count, key_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano), run.Input, run.Folder, run.OutDir,
		run.Entries, run.Keys,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (run_id, position, name, entry_key, size, has_text, overwritten)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			runID, r.Position, r.Name, r.Key, r.Size, r.HasText, r.Overwritten,
		); err != nil {
			return 0, fmt.Errorf("inserting entry %d: %w", r.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs returns every recorded run, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, input, folder, out_dir, entry_count, key_count
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			startedAt string
		)
		if err := rows.Scan(&r.ID, &startedAt, &r.Input, &r.Folder, &r.OutDir, &r.Entries, &r.Keys); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Entries returns the entries recorded for runID in document order.
func (s *Store) Entries(ctx context.Context, runID int64) ([]types.Record, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM runs WHERE id = ?`, runID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("looking up run %d: %w", runID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %d not found", runID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, name, entry_key, size, has_text, overwritten
		 FROM entries WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var r types.Record
		if err := rows.Scan(&r.Position, &r.Name, &r.Key, &r.Size, &r.HasText, &r.Overwritten); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
