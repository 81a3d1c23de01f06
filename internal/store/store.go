// Package store persists the task sequence.
//
// Two backends exist: a JSON array file (the default, compatible with the
// original tasks.json layout) and a single-table SQLite database. Both
// overwrite the whole sequence on every save.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"todo-cli/internal/log"
	"todo-cli/internal/model"
)

const (
	KindJSONFile = "jsonfile"
	KindSQLite   = "sqlite"
)

const (
	PolicyFail   = "fail"
	PolicyBackup = "backup"
)

// ErrCorruptData is matched (errors.Is) by every CorruptDataError.
var ErrCorruptData = errors.New("corrupt data")

// CorruptDataError is returned when the task file exists but cannot be decoded
// as a valid task sequence.
type CorruptDataError struct {
	Path string
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt task file %s: %v", e.Path, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

func (e *CorruptDataError) Is(target error) bool { return target == ErrCorruptData }

// Store loads and saves the full task sequence.
type Store interface {
	// Load returns the persisted tasks. A missing file yields an empty sequence.
	Load(ctx context.Context) ([]model.Task, error)
	// Save overwrites the persisted state with tasks.
	Save(ctx context.Context, tasks []model.Task) error
	// Path is the backing file.
	Path() string
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Kind   string
	Path   string
	Logger log.Logger
}

func (c *Config) defaults() error {
	c.Kind = strings.TrimSpace(c.Kind)
	if c.Kind == "" {
		c.Kind = KindJSONFile
	}
	if strings.TrimSpace(c.Path) == "" {
		return errors.New("store path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "store." + c.Kind})
	return nil
}

// Open returns the backend named by cfg.Kind.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid store config: %w", err)
	}
	switch cfg.Kind {
	case KindJSONFile:
		return NewJSONFile(cfg.Path, cfg.Logger), nil
	case KindSQLite:
		return NewSQLite(ctx, cfg.Path, cfg.Logger)
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

// LoadResult is the outcome of LoadWithRecovery.
type LoadResult struct {
	Tasks []model.Task
	// Recovered is set when corrupt data was moved aside and an empty
	// sequence was returned instead.
	Recovered bool
	// BackupPath is where the corrupt file was copied.
	BackupPath string
	// Warning is a user-facing description of the recovery.
	Warning string
}

// LoadWithRecovery loads tasks and applies policy when the file is corrupt.
//
//   - PolicyFail returns the CorruptDataError as is.
//   - PolicyBackup copies the corrupt file next to itself and starts empty.
func LoadWithRecovery(ctx context.Context, s Store, policy string, logger log.Logger) (LoadResult, error) {
	if logger == nil {
		logger = log.Noop
	}
	tasks, err := s.Load(ctx)
	if err == nil {
		logger.Debugf("loaded %d tasks from %s", len(tasks), s.Path())
		return LoadResult{Tasks: tasks}, nil
	}
	if !errors.Is(err, ErrCorruptData) || policy != PolicyBackup {
		return LoadResult{}, err
	}

	backup, berr := BackupCorrupt(s.Path(), time.Now())
	if berr != nil {
		return LoadResult{}, fmt.Errorf("%w (backup failed: %v)", err, berr)
	}
	logger.WithValues(log.Kv{"backup": backup}).Warningf("task file is corrupt, starting empty: %v", err)
	return LoadResult{
		Tasks:      []model.Task{},
		Recovered:  true,
		BackupPath: backup,
		Warning:    fmt.Sprintf("Task file was unreadable; saved a copy to %s and started empty.", backup),
	}, nil
}

// OpenWithRecovery opens the configured backend and loads it, applying policy
// when the data is corrupt. A SQLite file that cannot even be opened is moved
// aside (PolicyBackup) so a fresh database can be created in its place.
func OpenWithRecovery(ctx context.Context, cfg Config, policy string) (Store, LoadResult, error) {
	if err := cfg.defaults(); err != nil {
		return nil, LoadResult{}, fmt.Errorf("invalid store config: %w", err)
	}

	s, err := Open(ctx, cfg)
	var moved string
	if err != nil {
		if !errors.Is(err, ErrCorruptData) || policy != PolicyBackup {
			return nil, LoadResult{}, err
		}
		dest, merr := MoveCorrupt(cfg.Path, time.Now())
		if merr != nil {
			return nil, LoadResult{}, fmt.Errorf("%w (move aside failed: %v)", err, merr)
		}
		cfg.Logger.WithValues(log.Kv{"backup": dest}).Warningf("database is corrupt, starting fresh: %v", err)
		moved = dest
		if s, err = Open(ctx, cfg); err != nil {
			return nil, LoadResult{}, err
		}
	}

	res, err := LoadWithRecovery(ctx, s, policy, cfg.Logger)
	if err != nil {
		_ = s.Close()
		return nil, LoadResult{}, err
	}
	if moved != "" {
		res.Recovered = true
		res.BackupPath = moved
		res.Warning = fmt.Sprintf("Task database was unreadable; moved it to %s and started empty.", moved)
	}
	return s, res, nil
}

// assignIDs gives every task without an ID a fresh one.
func assignIDs(tasks []model.Task) {
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = model.NewTaskID()
		}
	}
}
