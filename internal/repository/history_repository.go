package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-zone-diff/internal/logger"
	"go-zone-diff/pkg/models"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const createRunsSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	left_root TEXT NOT NULL,
	right_root TEXT NOT NULL,
	total INTEGER NOT NULL,
	compared INTEGER NOT NULL,
	missing INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	report BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`

// SQLiteHistoryRepository stores run reports in a SQLite database
type SQLiteHistoryRepository struct {
	db *sql.DB
}

// NewSQLiteHistoryRepository opens (or creates) the history database at path
func NewSQLiteHistoryRepository(path string) (*SQLiteHistoryRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createRunsSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	logger.WithField("path", path).Debug("History database ready")
	return &SQLiteHistoryRepository{db: db}, nil
}

// SaveReport inserts or replaces the run identified by report.RunID
func (r *SQLiteHistoryRepository) SaveReport(ctx context.Context, report *models.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (
			id, created_at, left_root, right_root, total, compared, missing, failed, report
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID.String(),
		report.CreatedAt.UTC().Format(time.RFC3339Nano),
		report.LeftRoot,
		report.RightRoot,
		report.Summary.Total,
		report.Summary.Compared,
		report.Summary.Missing,
		report.Summary.Failed,
		payload,
	)
	if err != nil {
		return fmt.Errorf("store run %s: %w", report.RunID, err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all runs.
func (r *SQLiteHistoryRepository) ListRuns(ctx context.Context, limit int) ([]models.RunSummary, error) {
	query := `SELECT id, created_at, left_root, right_root, total, compared, missing, failed
		FROM runs ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.RunSummary
	for rows.Next() {
		var (
			s         models.RunSummary
			id        string
			createdAt string
		)
		if err := rows.Scan(&id, &createdAt, &s.LeftRoot, &s.RightRoot, &s.Total, &s.Compared, &s.Missing, &s.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if s.RunID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", id, err)
		}
		if s.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse run time %q: %w", createdAt, err)
		}
		runs = append(runs, s)
	}
	return runs, rows.Err()
}

// GetRun loads the full report of one run
func (r *SQLiteHistoryRepository) GetRun(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, "SELECT report FROM runs WHERE id = ?", id.String()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}

	var report models.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", id, err)
	}
	return &report, nil
}

// Close closes the underlying database
func (r *SQLiteHistoryRepository) Close() error {
	return r.db.Close()
}
