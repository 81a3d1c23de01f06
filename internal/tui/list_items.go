package tui

import (
	"todo-cli/internal/tasks"

	"github.com/charmbracelet/bubbles/list"
)

// taskItem is one visible row. It carries the task ID so actions can resolve
// the current index right before dispatching.
type taskItem struct {
	row tasks.Row
}

func (i taskItem) FilterValue() string { return i.row.Task.Text }
func (i taskItem) Title() string       { return taskLabel(i.row.Task) }
func (i taskItem) Description() string { return "" }
func (i taskItem) ID() string          { return i.row.Task.ID }

func newList(items []list.Item) list.Model {
	l := list.New(items, newTaskDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	// Extra navigation aliases.
	l.KeyMap.CursorUp.SetKeys("up", "k", "ctrl+p")
	l.KeyMap.CursorDown.SetKeys("down", "j", "ctrl+n")
	return l
}

func rowsToItems(rows []tasks.Row) []list.Item {
	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, taskItem{row: r})
	}
	return items
}
