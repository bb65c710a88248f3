// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records past generation runs in a SQLite database so
// operators can see what was assembled, from where, and with which
// warnings.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "history.db"
)

// Run is one recorded generation run.
type Run struct {
	ID           int64                     `json:"id"`
	StartedAt    time.Time                 `json:"started_at"`
	DocsPath     string                    `json:"docs_path"`
	OutputPath   string                    `json:"output_path"`
	Pages        int                       `json:"pages"`
	Groups       int                       `json:"groups"`
	Documents    int                       `json:"documents"`
	Tagged       int                       `json:"tagged"`
	Unclassified int                       `json:"unclassified"`
	Warnings     []types.AssemblyWarning   `json:"warnings,omitempty"`
	Failures     []types.ExtractionFailure `json:"failures,omitempty"`
}

// Store manages the run history SQLite database.
type Store struct {
	db      *sql.DB
	maxRuns int
}

// NewStore opens or creates the history database at dir/index/history.db,
// creating the schema if it does not exist. Runs beyond maxRuns are
// pruned oldest-first on insert; maxRuns <= 0 keeps everything.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.Dir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, maxRuns: cfg.MaxRuns}
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
	stmt := `CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		docs_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		pages INTEGER NOT NULL,
		sections INTEGER NOT NULL,
		documents INTEGER NOT NULL,
		tagged INTEGER NOT NULL,
		unclassified INTEGER NOT NULL,
		warnings TEXT,
		failures TEXT
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record inserts a run and prunes history past the configured limit.
func (s *Store) Record(run Run) (int64, error) {
	warnings, err := json.Marshal(run.Warnings)
	if err != nil {
		return 0, fmt.Errorf("encoding warnings: %w", err)
	}
	failures, err := json.Marshal(run.Failures)
	if err != nil {
		return 0, fmt.Errorf("encoding failures: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO runs (started_at, docs_path, output_path, pages, sections,
			documents, tagged, unclassified, warnings, failures)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339), run.DocsPath, run.OutputPath,
		run.Pages, run.Groups, run.Documents, run.Tagged, run.Unclassified,
		string(warnings), string(failures),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	if s.maxRuns > 0 {
		_, err = s.db.Exec(
			`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)`,
			s.maxRuns,
		)
		if err != nil {
			return 0, fmt.Errorf("pruning runs: %w", err)
		}
	}
	return id, nil
}

// List returns the most recent runs, newest first. limit <= 0 returns
// all runs.
func (s *Store) List(limit int) ([]Run, error) {
	query := `SELECT id, started_at, docs_path, output_path, pages, sections,
		documents, tagged, unclassified, warnings, failures
		FROM runs ORDER BY id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run                Run
			startedAt          string
			warnings, failures sql.NullString
		)
		if err := rows.Scan(&run.ID, &startedAt, &run.DocsPath, &run.OutputPath,
			&run.Pages, &run.Groups, &run.Documents, &run.Tagged,
			&run.Unclassified, &warnings, &failures); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp: %w", err)
		}
		if warnings.Valid && warnings.String != "" {
			if err := json.Unmarshal([]byte(warnings.String), &run.Warnings); err != nil {
				return nil, fmt.Errorf("decoding warnings: %w", err)
			}
		}
		if failures.Valid && failures.String != "" {
			if err := json.Unmarshal([]byte(failures.String), &run.Failures); err != nil {
				return nil, fmt.Errorf("decoding failures: %w", err)
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
