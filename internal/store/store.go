// Package store handles SQLite persistence of simulation results.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lumenlab/glaretrace/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the result archive.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			cores INTEGER NOT NULL,
			bounces INTEGER NOT NULL,
			divisions INTEGER NOT NULL,
			image INTEGER NOT NULL,
			direct INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id INTEGER NOT NULL,
			point INTEGER NOT NULL,
			month INTEGER NOT NULL,
			day INTEGER NOT NULL,
			hour REAL NOT NULL,
			dgp REAL NOT NULL,
			illuminance REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_run_point ON results(run_id, point);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_finished_at ON runs(finished_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a completed run and its per-instant results.
func (s *Store) InsertRun(ctx context.Context, run model.RunInfo, results []model.Result) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, cores, bounces, divisions, image, direct, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339Nano),
		run.FinishedAt.Format(time.RFC3339Nano),
		run.Cores,
		run.Bounces,
		run.Divisions,
		boolInt(run.Image),
		boolInt(run.Direct),
		run.ElapsedMs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(results) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO results (run_id, point, month, day, hour, dgp, illuminance)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, r := range results {
			if _, err := stmt.ExecContext(ctx, id, r.Point, r.Month, r.Day, r.Hour, r.DGP, r.Illuminance); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// LatestRun returns the most recently finished run.
func (s *Store) LatestRun(ctx context.Context) (model.RunInfo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, cores, bounces, divisions, image, direct, elapsed_ms
		 FROM runs ORDER BY finished_at DESC, id DESC LIMIT 1`)
	return scanRun(row)
}

// GetRun returns the run with the given id.
func (s *Store) GetRun(ctx context.Context, id int64) (model.RunInfo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, cores, bounces, divisions, image, direct, elapsed_ms
		 FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (model.RunInfo, error) {
	var run model.RunInfo
	var started, finished string
	var image, direct int
	if err := row.Scan(&run.ID, &started, &finished, &run.Cores, &run.Bounces, &run.Divisions, &image, &direct, &run.ElapsedMs); err != nil {
		if err == sql.ErrNoRows {
			return model.RunInfo{}, fmt.Errorf("no runs recorded yet")
		}
		return model.RunInfo{}, err
	}
	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return model.RunInfo{}, err
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return model.RunInfo{}, err
	}
	run.Image = image != 0
	run.Direct = direct != 0
	return run, nil
}

// ListResults returns the results of a run, optionally limited to a
// single view point (point >= 0), ordered by point and instant.
func (s *Store) ListResults(ctx context.Context, runID int64, point int) ([]model.Result, error) {
	query := `SELECT point, month, day, hour, dgp, illuminance
		FROM results WHERE run_id = ?`
	args := []any{runID}
	if point >= 0 {
		query += ` AND point = ?`
		args = append(args, point)
	}
	query += ` ORDER BY point, month, day, hour`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.Result
	for rows.Next() {
		var r model.Result
		if err := rows.Scan(&r.Point, &r.Month, &r.Day, &r.Hour, &r.DGP, &r.Illuminance); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Points returns the distinct view points recorded for a run.
func (s *Store) Points(ctx context.Context, runID int64) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT point FROM results WHERE run_id = ? ORDER BY point`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var points []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
