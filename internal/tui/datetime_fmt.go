package tui

import (
	"strings"
	"time"

	"todo-cli/internal/model"
	"todo-cli/internal/tasks"
)

// formatDueLabel renders the due date as stored, or "N/A".
func formatDueLabel(due string) string {
	due = strings.TrimSpace(due)
	if due == "" {
		return "N/A"
	}
	return due
}

// taskLabel is the row text: "<text>  [Due: <due or N/A>]".
func taskLabel(t model.Task) string {
	return t.Text + "  [Due: " + formatDueLabel(t.Due) + "]"
}

// isOverdue reports whether an unfinished task's due date is before today.
func isOverdue(t model.Task, now time.Time) bool {
	if t.Done() || strings.TrimSpace(t.Due) == "" {
		return false
	}
	d, err := time.ParseInLocation(tasks.DueLayout, t.Due, now.Location())
	if err != nil {
		return false
	}
	y, m, day := now.Date()
	return d.Before(time.Date(y, m, day, 0, 0, 0, 0, now.Location()))
}
