package tui

import (
	"errors"

	"todo-cli/internal/model"
	"todo-cli/internal/tasks"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case externalEditorDoneMsg:
		cmd := m.applyExternalEditorResult(msg)
		return m, cmd

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "i":
		return m, m.focusInput()
	case " ", "x":
		return m, m.toggleSelected()
	case "e":
		_, t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, m.openEditModal(t)
	case "d", "delete":
		_, t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.openConfirmDelete(t)
		return m, nil
	case "f":
		m.setFilter(m.filter.Next())
		return m, nil
	case "1", "2", "3":
		m.setFilter(model.Filters[int(msg.Runes[0]-'1')])
		return m, nil
	case "?":
		m.modal = modalHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.focusList()
		return m, nil
	case "enter":
		text, err := tasks.ValidateText(m.input.Value())
		if err != nil {
			m.openError("Error", err.Error())
			return m, nil
		}
		return m, m.openDueModal(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalDueDate:
		return m.updateDueModal(msg)
	case modalEditText:
		return m.updateEditModal(msg)
	case modalConfirmDelete:
		return m.updateConfirmDelete(msg)
	case modalError:
		switch msg.String() {
		case "enter", "esc", " ", "q":
			m.closeAllModals()
		}
		return m, nil
	case modalHelp:
		switch msg.String() {
		case "enter", "esc", "?", "q":
			m.closeAllModals()
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) updateDueModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancelling the prompt keeps the typed text in the input.
		m.closeAllModals()
		return m, nil
	case "enter":
		text := m.pendingText
		due := m.modalInput.Value()
		m.closeAllModals()

		t, err := m.list.Add(m.ctx, text, due)
		if tasks.IsValidation(err) {
			m.openError("Invalid date", err.Error())
			return m, nil
		}
		// A failed save still keeps the task in memory.
		m.input.Reset()
		m.refreshRows()
		m.selectTask(t.ID)
		if err != nil {
			m.openError("Save failed", err.Error())
			return m, nil
		}
		return m, m.showMinibuffer("Added: " + t.Text)
	}

	var cmd tea.Cmd
	m.modalInput, cmd = m.modalInput.Update(msg)
	return m, cmd
}

func (m appModel) updateEditModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeAllModals()
		return m, nil
	case "ctrl+e":
		cmd, err := m.openExternalEditor()
		if err != nil {
			return m, m.showMinibuffer("Editor failed: " + err.Error())
		}
		return m, cmd
	case "enter":
		id := m.modalForID
		text := m.modalInput.Value()
		m.closeAllModals()

		idx, _, ok := m.resolve(id)
		if !ok {
			m.refreshRows()
			return m, m.showMinibuffer("Task no longer exists")
		}
		err := m.list.Edit(m.ctx, idx, text)
		m.refreshRows()
		if err != nil {
			return m, m.reportErr(err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.modalInput, cmd = m.modalInput.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y", "Y":
		return m, m.confirmDelete()
	case "n", "N", "esc", "q":
		m.closeAllModals()
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m, m.confirmDelete()
		}
		m.closeAllModals()
		return m, nil
	}
	return m, nil
}

func (m *appModel) confirmDelete() tea.Cmd {
	id := m.modalForID
	m.closeAllModals()

	idx, t, ok := m.resolve(id)
	if !ok {
		m.refreshRows()
		return m.showMinibuffer("Task no longer exists")
	}
	err := m.list.Delete(m.ctx, idx)
	m.refreshRows()
	if err != nil {
		return m.reportErr(err)
	}
	return m.showMinibuffer("Deleted: " + t.Text)
}

func (m *appModel) toggleSelected() tea.Cmd {
	idx, _, ok := m.selectedTask()
	if !ok {
		return nil
	}
	err := m.list.Toggle(m.ctx, idx)
	m.refreshRows()
	if err != nil {
		return m.reportErr(err)
	}
	return nil
}

// selectedTask resolves the highlighted row to its current index.
func (m appModel) selectedTask() (int, model.Task, bool) {
	id, ok := m.selectedTaskID()
	if !ok {
		return -1, model.Task{}, false
	}
	return m.resolve(id)
}

func (m *appModel) reportErr(err error) tea.Cmd {
	var ie *tasks.IndexError
	switch {
	case tasks.IsValidation(err):
		m.openError("Error", err.Error())
	case errors.As(err, &ie):
		return m.showMinibuffer("Task no longer exists")
	default:
		m.logger.Errorf("operation failed: %v", err)
		m.openError("Save failed", err.Error())
	}
	return nil
}
