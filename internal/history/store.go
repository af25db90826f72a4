// Package history persists an audit trail of sync runs to SQLite.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/logictoad/plex-jellyfin-cli/internal/syncer"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; mismatched databases must be deleted and recreated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Run is one persisted sync pass.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Direction  string
	Library    string
	DryRun     bool
	Checked    int
	Unmatched  int
	Applied    int
	Skipped    int
}

// Action is one persisted sync decision.
type Action struct {
	RunID   string
	Action  string
	Title   string
	Season  int
	Episode int
	ItemID  string
	AddedAt time.Time
	Applied bool
}

// Store manages sync history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// RecordRun stores one completed sync pass with its decisions. It returns
// the assigned run ID.
func (s *Store) RecordRun(ctx context.Context, startedAt, finishedAt time.Time, report *syncer.Report) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sync_runs (
            id, started_at, finished_at, direction, library,
            dry_run, checked, unmatched, applied, skipped
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		startedAt.UTC().Format(time.RFC3339Nano),
		finishedAt.UTC().Format(time.RFC3339Nano),
		string(report.Direction),
		report.Library,
		boolToInt(report.DryRun),
		report.Checked,
		len(report.Unmatched),
		report.Applied(),
		report.Skipped,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, decision := range report.Decisions {
		var addedAt any
		if !decision.AddedAt.IsZero() {
			addedAt = decision.AddedAt.UTC().Format(time.RFC3339)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sync_actions (
                run_id, action, title, season, episode, item_id, added_at, applied
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID,
			string(decision.Action),
			decision.Title,
			decision.Season,
			decision.Episode,
			decision.ItemID,
			addedAt,
			boolToInt(decision.Applied),
		)
		if err != nil {
			return "", fmt.Errorf("insert action: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first. A limit of zero or
// less returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, finished_at, direction, library,
        dry_run, checked, unmatched, applied, skipped
        FROM sync_runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run                 Run
			startedAt, finished string
			dryRun              int
		)
		if err := rows.Scan(&run.ID, &startedAt, &finished, &run.Direction, &run.Library,
			&dryRun, &run.Checked, &run.Unmatched, &run.Applied, &run.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		run.DryRun = dryRun != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunActions returns a run's decisions in insertion order.
func (s *Store) RunActions(ctx context.Context, runID string) ([]Action, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, action, title, season, episode, item_id, added_at, applied
         FROM sync_actions WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	var actions []Action
	for rows.Next() {
		var (
			action  Action
			addedAt sql.NullString
			applied int
		)
		if err := rows.Scan(&action.RunID, &action.Action, &action.Title, &action.Season,
			&action.Episode, &action.ItemID, &addedAt, &applied); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		if addedAt.Valid {
			action.AddedAt, _ = time.Parse(time.RFC3339, addedAt.String)
		}
		action.Applied = applied != 0
		actions = append(actions, action)
	}
	return actions, rows.Err()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
