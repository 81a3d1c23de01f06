package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"todo-cli/internal/log"
	"todo-cli/internal/model"
	"todo-cli/internal/store/migrations"
)

// SQLite stores tasks in a single table ordered by position.
type SQLite struct {
	path   string
	db     *sql.DB
	logger log.Logger
}

// NewSQLite opens (and migrates) the database at path.
func NewSQLite(ctx context.Context, path string, logger log.Logger) (*SQLite, error) {
	if logger == nil {
		logger = log.Noop
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("could not create db directory: %w", err)
		}
	}

	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	// One writer; keeps "database is locked" away from the single UI goroutine.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, &CorruptDataError{Path: path, Err: err}
		}
	}

	migrator, err := migrations.NewMigrator(db, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	logger.Debugf("SQLite store initialized at %s", path)
	return &SQLite{path: path, db: db, logger: logger}, nil
}

func (s *SQLite) Path() string { return s.path }

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Load(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, status, due FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var t model.Task
		var status string
		if err := rows.Scan(&t.ID, &t.Text, &status, &t.Due); err != nil {
			return nil, &CorruptDataError{Path: s.path, Err: err}
		}
		t.Status = model.Status(status)
		if !t.Status.Valid() {
			return nil, &CorruptDataError{Path: s.path, Err: fmt.Errorf("task %s: invalid status %q", t.ID, status)}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	assignIDs(out)
	return out, nil
}

// Save replaces all rows inside one transaction.
func (s *SQLite) Save(ctx context.Context, tasks []model.Task) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	for i, t := range tasks {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			id = model.NewTaskID()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tasks(id, position, text, status, due) VALUES(?, ?, ?, ?, ?)`,
			id, i, t.Text, string(t.Status), t.Due,
		); err != nil {
			return fmt.Errorf("insert task %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Debugf("saved %d tasks", len(tasks))
	return nil
}
