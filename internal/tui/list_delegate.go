package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// taskDelegate renders one task per line: checkbox, then the label colored
// by status.
type taskDelegate struct {
	now func() time.Time
}

func newTaskDelegate() taskDelegate {
	return taskDelegate{now: time.Now}
}

func (d taskDelegate) Height() int  { return 1 }
func (d taskDelegate) Spacing() int { return 0 }
func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}
	it, ok := item.(taskItem)
	if !ok {
		fmt.Fprint(w, xansi.Cut(fmt.Sprint(item), 0, contentW))
		return
	}
	t := it.row.Task

	labelStyle := lipgloss.NewStyle().Foreground(colorInProgress)
	if t.Done() {
		labelStyle = lipgloss.NewStyle().Foreground(colorDone)
	} else if isOverdue(t, d.now()) {
		labelStyle = labelStyle.Underline(true)
	}
	selected := index == m.Index()

	prefix := "  "
	if selected {
		prefix = "> "
	}
	plain := prefix + glyphCheckbox(t.Done()) + " " + it.Title()
	plainW := xansi.StringWidth(plain)
	if plainW > contentW {
		plain = xansi.Truncate(plain, contentW-1, "…")
		plainW = xansi.StringWidth(plain)
	}
	if plainW < contentW {
		plain += strings.Repeat(" ", contentW-plainW)
	}

	if selected {
		labelStyle = labelStyle.Background(colorSelectedBg).Bold(true)
	}
	fmt.Fprint(w, labelStyle.Render(plain))
}
