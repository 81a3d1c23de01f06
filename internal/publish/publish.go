// Package publish exports the task list as a Markdown checklist.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"todo-cli/internal/model"
)

type WriteOptions struct {
	RenderOptions
	Overwrite bool
}

type WriteResult struct {
	Written string `json:"written" yaml:"written"`
	Tasks   int    `json:"tasks" yaml:"tasks"`
}

// Write renders tasks and writes them to path.
func Write(tasks []model.Task, path string, opt WriteOptions) (WriteResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	path = filepath.Clean(path)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return WriteResult{}, err
		}
	}
	md := RenderMarkdown(tasks, opt.RenderOptions)
	if err := writeFile(path, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	n := 0
	for _, t := range tasks {
		if opt.Filter.Matches(t.Status) {
			n++
		}
	}
	return WriteResult{Written: path, Tasks: n}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
