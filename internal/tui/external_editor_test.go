package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"todo-cli/internal/model"
)

func TestExternalEditorResult_FillsEditInput(t *testing.T) {
	m, l, _ := newTestModel(t, model.Task{Text: "Old", Status: model.StatusInProgress})
	m = press(t, m, "e")

	path := filepath.Join(t.TempDir(), "edit.txt")
	if err := os.WriteFile(path, []byte("New\ntext  here\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	mAny, _ := m.Update(externalEditorDoneMsg{path: path})
	m = mAny.(appModel)
	if v := m.modalInput.Value(); v != "New text here" {
		t.Fatalf("expected joined text; got %q", v)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed; got %v", err)
	}

	m = press(t, m, "enter")
	if got, _ := l.At(0); got.Text != "New text here" {
		t.Fatalf("expected edited text saved; got %q", got.Text)
	}
}

func TestExternalEditorResult_ErrorKeepsInput(t *testing.T) {
	m, _, _ := newTestModel(t, model.Task{Text: "Old", Status: model.StatusInProgress})
	m = press(t, m, "e")

	mAny, _ := m.Update(externalEditorDoneMsg{path: filepath.Join(t.TempDir(), "missing"), err: errors.New("boom")})
	m = mAny.(appModel)
	if v := m.modalInput.Value(); v != "Old" {
		t.Fatalf("expected input unchanged; got %q", v)
	}
	if m.minibufferText == "" {
		t.Fatalf("expected minibuffer message")
	}
}
