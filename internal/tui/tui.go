// Package tui is the interactive task list.
package tui

import (
	"context"

	"todo-cli/internal/log"
	"todo-cli/internal/tasks"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures Run.
type Options struct {
	List *tasks.List
	// TaskFile is shown in the header.
	TaskFile string
	// StatePath is where the selected filter is remembered. Empty disables it.
	StatePath string
	// Warning is shown in a modal on launch (e.g. corrupt file recovery).
	Warning string
	Logger  log.Logger
	// Theme is light|dark|auto; Glyphs is unicode|ascii.
	Theme  string
	Glyphs string
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(ctx, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
