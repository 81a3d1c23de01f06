package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"todo-cli/internal/model"
)

const tuiStateFileName = ".todo_ui.json"

// TUIState stores small, user-facing UI state for restoring the last screen on relaunch.
//
// The file lives next to the task file so each task list keeps its own state.
// It is best effort: missing or invalid data yields defaults.
type TUIState struct {
	Version int `json:"version"`

	// Filter is one of: all|in-progress|done
	Filter string `json:"filter,omitempty"`
}

// TUIStatePath returns the UI state path for a task file.
func TUIStatePath(taskFile string) string {
	return filepath.Join(filepath.Dir(taskFile), tuiStateFileName)
}

func LoadTUIState(path string) (*TUIState, error) {
	if strings.TrimSpace(path) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	if _, ok := model.ParseFilter(st.Filter); !ok {
		st.Filter = ""
	}
	return &st, nil
}

func SaveTUIState(path string, st *TUIState) error {
	if st == nil || strings.TrimSpace(path) == "" {
		return nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
