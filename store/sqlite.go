package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/semforge/go-semforge/model"
	"github.com/semforge/go-semforge/validation"
)

// SQLiteStore persists runs in a single SQLite file. Model and report are
// stored as JSON blobs next to the queryable columns.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the history database at
// dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	PRAGMA journal_mode=WAL;

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		seed INTEGER NOT NULL,
		sample_size INTEGER NOT NULL,
		overall_valid INTEGER NOT NULL DEFAULT 0,
		model_json TEXT NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, run *Run) error {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	modelJSON, err := json.Marshal(run.Model)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	reportJSON, err := json.Marshal(run.Report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, created_at, seed, sample_size, overall_valid, model_json, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, createdAt, run.Seed, run.SampleSize, run.OverallValid,
		string(modelJSON), string(reportJSON),
	)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, seed, sample_size, overall_valid, model_json, report_json
		 FROM runs WHERE id = ?`, id,
	)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return run, err
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*Run, error) {
	q := `SELECT id, created_at, seed, sample_size, overall_valid, model_json, report_json
	      FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var modelJSON, reportJSON string
	err := row.Scan(&run.ID, &run.CreatedAt, &run.Seed, &run.SampleSize,
		&run.OverallValid, &modelJSON, &reportJSON)
	if err != nil {
		return nil, err
	}
	run.Model = &model.Model{}
	if err := json.Unmarshal([]byte(modelJSON), run.Model); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	run.Report = &validation.Report{}
	if err := json.Unmarshal([]byte(reportJSON), run.Report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &run, nil
}
