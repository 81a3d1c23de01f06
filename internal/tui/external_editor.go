package tui

import (
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type externalEditorDoneMsg struct {
	path string
	err  error
}

func externalEditorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// openExternalEditor suspends the TUI and edits the modal input's text in
// $VISUAL/$EDITOR.
func (m *appModel) openExternalEditor() (tea.Cmd, error) {
	args := splitShellWords(externalEditorName())
	if len(args) == 0 {
		args = []string{"vi"}
	}

	f, err := os.CreateTemp("", "todo-task-*.txt")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if _, err := f.WriteString(m.modalInput.Value() + "\n"); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	_ = f.Close()

	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalEditorDoneMsg{path: path, err: err}
	}), nil
}

// applyExternalEditorResult loads the edited text back into the modal input.
// Task text is single-line, so lines are joined with spaces.
func (m *appModel) applyExternalEditorResult(msg externalEditorDoneMsg) tea.Cmd {
	defer func() { _ = os.Remove(msg.path) }()

	if msg.err != nil {
		return m.showMinibuffer("Editor failed: " + msg.err.Error())
	}
	b, err := os.ReadFile(msg.path)
	if err != nil {
		return m.showMinibuffer("Editor read failed: " + err.Error())
	}
	if m.modal != modalEditText {
		return nil
	}
	m.modalInput.SetValue(strings.Join(strings.Fields(string(b)), " "))
	m.modalInput.CursorEnd()
	return m.showMinibuffer("Updated from " + externalEditorName() + " (enter to save)")
}
