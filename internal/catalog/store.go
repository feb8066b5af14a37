// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists a record of conversion attempts in a local
// SQLite database. It is opt-in: nothing is written unless the catalog
// is enabled on the command line.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/asset-engine/pkg/types"
)

const dbFile = "catalog.db"

// DefaultDir is where the catalog database lives unless configured
// otherwise.
const DefaultDir = ".asset-engine"

// Store manages the conversion catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database under dir, creating the
// directory and schema as needed. An empty dir means DefaultDir.
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			engine TEXT,
			status TEXT NOT NULL,
			source_mod_time TEXT,
			output_size INTEGER,
			duration_ms INTEGER,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_input ON conversions(input_path)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one conversion attempt and returns its row ID.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) (int64, error) {
	modTime := ""
	if !rec.SourceModTime.IsZero() {
		modTime = rec.SourceModTime.UTC().Format(time.RFC3339Nano)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions
			(input_path, output_path, engine, status, source_mod_time, output_size, duration_ms, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.InputPath, rec.OutputPath, rec.Engine, string(rec.Status),
		modTime, rec.OutputSize, rec.DurationMS,
		rec.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting conversion record: %w", err)
	}
	return res.LastInsertId()
}

// Last returns the most recent record for an input path, or nil when
// the path has never been recorded.
func (s *Store) Last(ctx context.Context, inputPath string) (*types.ConversionRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, input_path, output_path, engine, status, source_mod_time, output_size, duration_ms, converted_at
		 FROM conversions WHERE input_path = ? ORDER BY id DESC LIMIT 1`,
		inputPath,
	)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last conversion of %s: %w", inputPath, err)
	}
	return &rec, nil
}

// List returns the most recent records, newest first. A non-positive
// limit returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]types.ConversionRecord, error) {
	query := `SELECT id, input_path, output_path, engine, status, source_mod_time, output_size, duration_ms, converted_at
		 FROM conversions ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning conversion record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(scan func(dest ...any) error) (types.ConversionRecord, error) {
	var rec types.ConversionRecord
	var status, modTime, convertedAt string

	err := scan(&rec.ID, &rec.InputPath, &rec.OutputPath, &rec.Engine,
		&status, &modTime, &rec.OutputSize, &rec.DurationMS, &convertedAt)
	if err != nil {
		return rec, err
	}

	rec.Status = types.ConversionStatus(status)
	if modTime != "" {
		rec.SourceModTime, _ = time.Parse(time.RFC3339Nano, modTime)
	}
	rec.ConvertedAt, _ = time.Parse(time.RFC3339Nano, convertedAt)
	return rec, nil
}

// Unchanged returns the incremental-mode check: an input is unchanged
// when its last recorded attempt succeeded, its modification time
// matches the record, and the output file still exists.
func Unchanged(store *Store) func(inputPath, outputPath string) bool {
	return func(inputPath, outputPath string) bool {
		rec, err := store.Last(context.Background(), inputPath)
		if err != nil || rec == nil || rec.Status != types.StatusConverted {
			return false
		}

		info, err := os.Stat(inputPath)
		if err != nil {
			return false
		}
		recorded := rec.SourceModTime.UTC().Format(time.RFC3339Nano)
		current := info.ModTime().UTC().Format(time.RFC3339Nano)
		if recorded != current {
			return false
		}

		_, err = os.Stat(outputPath)
		return err == nil
	}
}
