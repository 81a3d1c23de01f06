package tui

import (
	"strings"

	"todo-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.modal != modalNone {
		return placeCentered(m.width, m.height, m.renderModal())
	}

	w := m.contentWidth()
	bodyH := m.height - 6
	if bodyH < 3 {
		bodyH = 3
	}

	var body string
	if len(m.rows.Items()) == 0 {
		body = styleMuted().Render(m.emptyMessage())
	} else {
		body = m.rows.View()
	}

	page := strings.Join([]string{
		m.renderHeader(w),
		"",
		m.renderTopBar(w),
		"",
		normalizePane(body, w, bodyH),
		"",
		m.renderFooter(w),
	}, "\n")
	return lipgloss.NewStyle().PaddingLeft(1).Render(page)
}

func (m appModel) renderHeader(w int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(appTitle)
	path := ""
	if strings.TrimSpace(m.taskFile) != "" {
		path = styleMuted().Render("  " + m.taskFile)
	}
	line := title + path
	if xansi.StringWidth(line) > w {
		line = xansi.Truncate(line, w-1, "…")
	}
	return line
}

func (m appModel) renderTopBar(w int) string {
	filters := m.renderFilterBar()
	inputW := w - xansi.StringWidth(filters) - 2
	input := renderInputLine(inputW, m.input.View(), m.focus == focusInput)
	return lipgloss.JoinHorizontal(lipgloss.Top, input, "  ", filters)
}

// filterBarWidth is the visible width of renderFilterBar.
func filterBarWidth() int {
	w := 0
	for i, f := range model.Filters {
		if i > 0 {
			w += 3
		}
		w += len(f) + 2
	}
	return w
}

func (m appModel) renderFilterBar() string {
	active := lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(colorAccentFg).
		Background(colorAccent)
	inactive := lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)
	sep := styleMuted().Render(" " + glyphSeparator() + " ")

	parts := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		if f == m.filter {
			parts = append(parts, active.Render(string(f)))
		} else {
			parts = append(parts, inactive.Render(string(f)))
		}
	}
	return strings.Join(parts, sep)
}

func (m appModel) renderFooter(w int) string {
	if strings.TrimSpace(m.minibufferText) != "" {
		return lipgloss.NewStyle().Foreground(colorAccent).Width(w).Render(m.minibufferText)
	}
	help := "space: toggle  e: edit  d: delete  tab: new  f: filter  ?: help  q: quit"
	if m.focus == focusInput {
		help = "enter: add  esc: back to list"
	}
	return styleMuted().Width(w).Render(help)
}

func (m appModel) emptyMessage() string {
	if m.list.Len() == 0 {
		return "No tasks yet. Press tab to add one."
	}
	return "No " + string(m.filter) + " tasks."
}

func (m appModel) renderModal() string {
	bodyW := modalBodyWidth(m.width)
	switch m.modal {
	case modalDueDate:
		content := strings.Join([]string{
			"Enter due date (YYYY-MM-DD):",
			"",
			renderInputLine(bodyW, m.modalInput.View(), true),
			"",
			styleMuted().Width(bodyW).Render("enter: add   esc: cancel"),
		}, "\n")
		return renderModalBox(m.width, "Add task", content)

	case modalEditText:
		content := strings.Join([]string{
			"Edit task:",
			"",
			renderInputLine(bodyW, m.modalInput.View(), true),
			"",
			styleMuted().Width(bodyW).Render("enter: save   ctrl+e: $EDITOR   esc: cancel"),
		}, "\n")
		return renderModalBox(m.width, "Edit task", content)

	case modalConfirmDelete:
		body := "Are you sure you want to delete this task?"
		if _, t, ok := m.resolve(m.modalForID); ok {
			body += "\n\n" + styleMuted().Width(bodyW).Render(t.Text)
		}
		return renderConfirmModal(m.width, "Delete task", body, "Yes", "No", m.confirmFocus)

	case modalError:
		content := strings.Join([]string{
			lipgloss.NewStyle().Foreground(colorError).Width(bodyW).Render(m.errorBody),
			"",
			styleMuted().Width(bodyW).Render("enter/esc: close"),
		}, "\n")
		return renderModalBox(m.width, m.errorTitle, content)

	case modalHelp:
		content := renderMarkdown(helpMarkdown, bodyW) + "\n\n" + styleMuted().Width(bodyW).Render("esc/?: close")
		return renderModalBox(m.width, "Help", content)
	}
	return ""
}
