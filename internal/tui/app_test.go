package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"todo-cli/internal/model"
	"todo-cli/internal/store"
	"todo-cli/internal/tasks"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T, seed ...model.Task) (appModel, *tasks.List, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	l := tasks.New(seed, store.NewJSONFile(path, nil), nil)
	m := newAppModel(context.Background(), Options{
		List:      l,
		TaskFile:  path,
		StatePath: store.TUIStatePath(path),
	})
	return m, l, path
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		mAny, _ := m.Update(keyMsg(k))
		mm, ok := mAny.(appModel)
		if !ok {
			t.Fatalf("expected appModel after %q; got %T", k, mAny)
		}
		m = mm
	}
	return m
}

func rowTexts(m appModel) []string {
	var out []string
	for _, it := range m.rows.Items() {
		out = append(out, it.(taskItem).row.Task.Text)
	}
	return out
}

func scenarioTasks() []model.Task {
	return []model.Task{
		{Text: "A", Status: model.StatusInProgress, Due: "2024-06-01"},
		{Text: "B", Status: model.StatusDone},
		{Text: "C", Status: model.StatusInProgress},
	}
}

func TestAdd_PromptsForDueThenAdds(t *testing.T) {
	m, l, path := newTestModel(t)

	m = press(t, m, "tab", "Buy milk", "enter")
	if m.modal != modalDueDate {
		t.Fatalf("expected due date modal; got %v", m.modal)
	}
	if !strings.Contains(m.View(), "Enter due date (YYYY-MM-DD):") {
		t.Fatalf("expected due prompt in view")
	}

	m = press(t, m, "2024-06-01", "enter")
	if m.modal != modalNone {
		t.Fatalf("expected modal closed; got %v", m.modal)
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 task; got %d", l.Len())
	}
	got, _ := l.At(0)
	if got.Text != "Buy milk" || got.Due != "2024-06-01" || got.Status != model.StatusInProgress {
		t.Fatalf("unexpected task: %+v", got)
	}
	if v := m.input.Value(); v != "" {
		t.Fatalf("expected input cleared; got %q", v)
	}

	loaded, err := store.NewJSONFile(path, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Text != "Buy milk" {
		t.Fatalf("expected task persisted; got %+v", loaded)
	}
}

func TestAdd_EmptyDueAddsWithoutDate(t *testing.T) {
	m, l, _ := newTestModel(t)

	m = press(t, m, "tab", "Call mom", "enter", "enter")
	if l.Len() != 1 {
		t.Fatalf("expected 1 task; got %d", l.Len())
	}
	got, _ := l.At(0)
	if got.Due != "" {
		t.Fatalf("expected no due date; got %q", got.Due)
	}
	if !strings.Contains(m.View(), "Call mom  [Due: N/A]") {
		t.Fatalf("expected N/A label in view:\n%s", m.View())
	}
}

func TestAdd_EmptyTextShowsError(t *testing.T) {
	m, l, _ := newTestModel(t)

	m = press(t, m, "tab", "   ", "enter")
	if m.modal != modalError {
		t.Fatalf("expected error modal; got %v", m.modal)
	}
	if m.errorBody != "Task cannot be empty." {
		t.Fatalf("unexpected error body %q", m.errorBody)
	}
	if l.Len() != 0 {
		t.Fatalf("expected no tasks; got %d", l.Len())
	}

	m = press(t, m, "enter")
	if m.modal != modalNone {
		t.Fatalf("expected error modal dismissed; got %v", m.modal)
	}
}

func TestAdd_InvalidDueShowsErrorAndAborts(t *testing.T) {
	m, l, _ := newTestModel(t)

	m = press(t, m, "tab", "Pay rent", "enter", "2024-13-40", "enter")
	if m.modal != modalError {
		t.Fatalf("expected error modal; got %v", m.modal)
	}
	if m.errorBody != "Please use YYYY-MM-DD format." {
		t.Fatalf("unexpected error body %q", m.errorBody)
	}
	if l.Len() != 0 {
		t.Fatalf("expected no tasks; got %d", l.Len())
	}
	// The typed text survives so the user can retry.
	if v := m.input.Value(); v != "Pay rent" {
		t.Fatalf("expected input kept; got %q", v)
	}
}

func TestAdd_EscCancelsDuePrompt(t *testing.T) {
	m, l, _ := newTestModel(t)

	m = press(t, m, "tab", "Later", "enter", "esc")
	if m.modal != modalNone {
		t.Fatalf("expected modal closed; got %v", m.modal)
	}
	if l.Len() != 0 {
		t.Fatalf("expected no tasks; got %d", l.Len())
	}
}

func TestRows_SortedAndFiltered(t *testing.T) {
	m, _, _ := newTestModel(t, scenarioTasks()...)

	if got := strings.Join(rowTexts(m), ","); got != "C,A,B" {
		t.Fatalf("expected C,A,B; got %s", got)
	}

	m = press(t, m, "3")
	if m.filter != model.FilterDone {
		t.Fatalf("expected done filter; got %s", m.filter)
	}
	if got := strings.Join(rowTexts(m), ","); got != "B" {
		t.Fatalf("expected B; got %s", got)
	}

	m = press(t, m, "2")
	if got := strings.Join(rowTexts(m), ","); got != "C,A" {
		t.Fatalf("expected C,A; got %s", got)
	}
}

func TestFilter_CycleAndRestore(t *testing.T) {
	m, l, path := newTestModel(t, scenarioTasks()...)

	want := []model.Filter{model.FilterInProgress, model.FilterDone, model.FilterAll, model.FilterInProgress}
	for i, f := range want {
		m = press(t, m, "f")
		if m.filter != f {
			t.Fatalf("press %d: expected %s; got %s", i+1, f, m.filter)
		}
	}

	reopened := newAppModel(context.Background(), Options{
		List:      l,
		TaskFile:  path,
		StatePath: store.TUIStatePath(path),
	})
	if reopened.filter != model.FilterInProgress {
		t.Fatalf("expected restored filter in-progress; got %s", reopened.filter)
	}
}

func TestToggle_SpaceAndX(t *testing.T) {
	m, l, _ := newTestModel(t, model.Task{Text: "A", Status: model.StatusInProgress})

	m = press(t, m, " ")
	if got, _ := l.At(0); got.Status != model.StatusDone {
		t.Fatalf("expected done after space; got %s", got.Status)
	}
	m = press(t, m, "x")
	if got, _ := l.At(0); got.Status != model.StatusInProgress {
		t.Fatalf("expected in-progress after x; got %s", got.Status)
	}
	_ = m
}

func TestToggle_ResolvesSelectionByID(t *testing.T) {
	m, l, _ := newTestModel(t, scenarioTasks()...)

	// Rows are C, A, B. Select A.
	m = press(t, m, "down")
	if id, _ := m.selectedTaskID(); id == "" {
		t.Fatalf("expected a selection")
	}

	// Remove C behind the model's back; A's index shifts.
	idx, ok := l.IndexOf(l.Tasks()[0].ID)
	if !ok {
		t.Fatalf("expected C to exist")
	}
	if err := l.Delete(context.Background(), idx); err != nil {
		t.Fatalf("delete: %v", err)
	}

	m = press(t, m, " ")
	for _, tk := range l.Tasks() {
		switch tk.Text {
		case "A":
			if tk.Status != model.StatusDone {
				t.Fatalf("expected A toggled; got %s", tk.Status)
			}
		case "B":
			if tk.Status != model.StatusDone {
				t.Fatalf("expected B untouched; got %s", tk.Status)
			}
		}
	}
}

func TestEdit_PrefillsAndSaves(t *testing.T) {
	m, l, _ := newTestModel(t, model.Task{Text: "Old", Status: model.StatusInProgress})

	m = press(t, m, "e")
	if m.modal != modalEditText {
		t.Fatalf("expected edit modal; got %v", m.modal)
	}
	if v := m.modalInput.Value(); v != "Old" {
		t.Fatalf("expected prefilled text; got %q", v)
	}

	m.modalInput.SetValue("New")
	m = press(t, m, "enter")
	if got, _ := l.At(0); got.Text != "New" {
		t.Fatalf("expected edited text; got %q", got.Text)
	}
}

func TestEdit_EmptyIsNoop(t *testing.T) {
	m, l, _ := newTestModel(t, model.Task{Text: "Keep", Status: model.StatusInProgress})

	m = press(t, m, "e")
	m.modalInput.SetValue("   ")
	m = press(t, m, "enter")
	if m.modal != modalNone {
		t.Fatalf("expected no modal; got %v", m.modal)
	}
	if got, _ := l.At(0); got.Text != "Keep" {
		t.Fatalf("expected text unchanged; got %q", got.Text)
	}
}

func TestDelete_ConfirmYes(t *testing.T) {
	m, l, _ := newTestModel(t, scenarioTasks()...)

	m = press(t, m, "d")
	if m.modal != modalConfirmDelete {
		t.Fatalf("expected confirm modal; got %v", m.modal)
	}
	if !strings.Contains(m.View(), "Are you sure you want to delete this task?") {
		t.Fatalf("expected confirm prompt in view")
	}
	m = press(t, m, "y")
	if l.Len() != 2 {
		t.Fatalf("expected 2 tasks; got %d", l.Len())
	}
	if got := strings.Join(rowTexts(m), ","); got != "A,B" {
		t.Fatalf("expected A,B; got %s", got)
	}
}

func TestDelete_ConfirmViaButtons(t *testing.T) {
	m, l, _ := newTestModel(t, scenarioTasks()...)

	m = press(t, m, "delete", "tab", "enter")
	if l.Len() != 2 {
		t.Fatalf("expected 2 tasks; got %d", l.Len())
	}
}

func TestDelete_DeclineLeavesListUnchanged(t *testing.T) {
	cases := []struct {
		name string
		keys []string
	}{
		{name: "n", keys: []string{"d", "n"}},
		{name: "esc", keys: []string{"d", "esc"}},
		{name: "enter on default No", keys: []string{"d", "enter"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, l, _ := newTestModel(t, scenarioTasks()...)
			m = press(t, m, tc.keys...)
			if m.modal != modalNone {
				t.Fatalf("expected modal closed; got %v", m.modal)
			}
			if l.Len() != 3 {
				t.Fatalf("expected 3 tasks; got %d", l.Len())
			}
		})
	}
}

func TestKeys_IgnoredOnEmptyList(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "e", "d", " ")
	if m.modal != modalNone {
		t.Fatalf("expected no modal; got %v", m.modal)
	}
	if !strings.Contains(m.View(), "No tasks yet") {
		t.Fatalf("expected empty message in view")
	}
}

func TestQuit_OnlyFromList(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}

	m = press(t, m, "tab", "q")
	if v := m.input.Value(); v != "q" {
		t.Fatalf("expected q typed into input; got %q", v)
	}
}

func TestHelpModal(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "?")
	if m.modal != modalHelp {
		t.Fatalf("expected help modal; got %v", m.modal)
	}
	m = press(t, m, "esc")
	if m.modal != modalNone {
		t.Fatalf("expected help closed; got %v", m.modal)
	}
}

func TestLaunchWarningOpensModal(t *testing.T) {
	m := newAppModel(context.Background(), Options{Warning: "saved a copy"})
	if m.modal != modalError || m.errorBody != "saved a copy" {
		t.Fatalf("expected warning modal; got %v %q", m.modal, m.errorBody)
	}
}

func TestView_Header(t *testing.T) {
	m, _, path := newTestModel(t)
	m.width = 200
	v := m.View()
	if !strings.Contains(v, appTitle) {
		t.Fatalf("expected title in header")
	}
	if !strings.Contains(v, filepath.Base(path)) {
		t.Fatalf("expected file path in header")
	}
}
