package store

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todo-cli/internal/log"
	"todo-cli/internal/model"
)

//go:embed tasks.schema.json
var taskFileSchema string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("tasks.schema.json", taskFileSchema)
	})
	return schema, schemaErr
}

// JSONFile stores tasks as a JSON array of {text, status, due} objects.
type JSONFile struct {
	path   string
	logger log.Logger
}

func NewJSONFile(path string, logger log.Logger) *JSONFile {
	if logger == nil {
		logger = log.Noop
	}
	return &JSONFile{path: path, logger: logger}
}

func (s *JSONFile) Path() string { return s.path }

func (s *JSONFile) Close() error { return nil }

func (s *JSONFile) Load(_ context.Context) ([]model.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}
	tasks, err := decodeTasks(data)
	if err != nil {
		return nil, &CorruptDataError{Path: s.path, Err: err}
	}
	assignIDs(tasks)
	return tasks, nil
}

func (s *JSONFile) Save(_ context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create task dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	s.logger.Debugf("saved %d tasks", len(tasks))
	return nil
}

// decodeTasks parses and validates a task file document.
func decodeTasks(data []byte) ([]model.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty file")
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	for i := range tasks {
		tasks[i].Due = padDue(tasks[i].Due)
	}
	return tasks, nil
}

// padDue rewrites an unpadded date such as 2024-6-1 to 2024-06-01 so due
// dates keep sorting chronologically as strings. Values that are not real
// dates are returned unchanged.
func padDue(due string) string {
	if due == "" {
		return due
	}
	d, err := time.Parse("2006-1-2", due)
	if err != nil {
		return due
	}
	return d.Format(time.DateOnly)
}
