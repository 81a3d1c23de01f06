package tui

import (
	"context"
	"strings"
	"time"

	"todo-cli/internal/log"
	"todo-cli/internal/model"
	"todo-cli/internal/store"
	"todo-cli/internal/tasks"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	appTitle = "Enhanced To-Do App"

	defaultWidth  = 80
	defaultHeight = 24
	maxContentW   = 96

	minibufferTTL = 3 * time.Second
)

type appModel struct {
	ctx       context.Context
	list      *tasks.List
	logger    log.Logger
	taskFile  string
	statePath string

	width  int
	height int

	filter model.Filter
	focus  focusArea

	input textinput.Model
	rows  list.Model

	modal modalKind
	// modalForID is the task the open modal acts on.
	modalForID   string
	modalInput   textinput.Model
	pendingText  string
	confirmFocus confirmModalFocus
	errorTitle   string
	errorBody    string

	minibufferText string
	minibufferSeq  int
}

func newAppModel(ctx context.Context, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Noop
	}
	l := opts.List
	if l == nil {
		l = tasks.New(nil, nil, logger)
	}

	m := appModel{
		ctx:       ctx,
		list:      l,
		logger:    logger.WithValues(log.Kv{"svc": "tui"}),
		taskFile:  opts.TaskFile,
		statePath: opts.StatePath,
		width:     defaultWidth,
		height:    defaultHeight,
		filter:    model.FilterAll,
		focus:     focusList,
	}

	if st, err := store.LoadTUIState(m.statePath); err != nil {
		m.logger.Warningf("could not load ui state: %v", err)
	} else if f, ok := model.ParseFilter(st.Filter); ok {
		m.filter = f
	}

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.Placeholder = "New task (tab to type, enter to add)"
	m.input.CharLimit = 500

	m.modalInput = textinput.New()
	m.modalInput.Prompt = ""
	m.modalInput.CharLimit = 500

	m.rows = newList(nil)
	m.resizeLists()
	m.refreshRows()

	if w := strings.TrimSpace(opts.Warning); w != "" {
		m.openError("Task file recovered", w)
	}
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) contentWidth() int {
	w := m.width - 2
	if w > maxContentW {
		w = maxContentW
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *appModel) resizeLists() {
	// header, gap, top bar, gap, <rows>, gap, footer
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	w := m.contentWidth()
	m.rows.SetSize(w, h)
	m.input.Width = w - filterBarWidth() - 5
	m.modalInput.Width = modalBodyWidth(m.width) - 3
}

// refreshRows rebuilds every row from the sorted, filtered view and keeps the
// selection on the same task when it is still visible.
func (m *appModel) refreshRows() {
	keepID, _ := m.selectedTaskID()
	rows := m.list.View(m.filter)
	m.rows.SetItems(rowsToItems(rows))
	if keepID != "" {
		m.selectTask(keepID)
	}
	if n := len(rows); n > 0 && m.rows.Index() >= n {
		m.rows.Select(n - 1)
	}
}

func (m *appModel) selectTask(id string) bool {
	for i, it := range m.rows.Items() {
		if ti, ok := it.(taskItem); ok && ti.ID() == id {
			m.rows.Select(i)
			return true
		}
	}
	return false
}

func (m appModel) selectedTaskID() (string, bool) {
	it, ok := m.rows.SelectedItem().(taskItem)
	if !ok {
		return "", false
	}
	return it.ID(), true
}

// resolve maps a task ID to its current index in the list.
func (m appModel) resolve(id string) (int, model.Task, bool) {
	idx, ok := m.list.IndexOf(id)
	if !ok {
		return -1, model.Task{}, false
	}
	t, err := m.list.At(idx)
	if err != nil {
		return -1, model.Task{}, false
	}
	return idx, t, true
}

func (m *appModel) setFilter(f model.Filter) {
	if f == m.filter {
		return
	}
	m.filter = f
	m.refreshRows()
	m.rows.Select(0)
	m.saveState()
}

func (m *appModel) saveState() {
	if strings.TrimSpace(m.statePath) == "" {
		return
	}
	st := &store.TUIState{Version: 1, Filter: string(m.filter)}
	if err := store.SaveTUIState(m.statePath, st); err != nil {
		m.logger.Warningf("could not save ui state: %v", err)
	}
}

func (m *appModel) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *appModel) focusList() {
	m.focus = focusList
	m.input.Blur()
}

func (m *appModel) openDueModal(text string) tea.Cmd {
	m.modal = modalDueDate
	m.pendingText = text
	m.modalInput.Reset()
	m.modalInput.Placeholder = "YYYY-MM-DD (empty for none)"
	return m.modalInput.Focus()
}

func (m *appModel) openEditModal(t model.Task) tea.Cmd {
	m.modal = modalEditText
	m.modalForID = t.ID
	m.modalInput.Placeholder = ""
	m.modalInput.SetValue(t.Text)
	m.modalInput.CursorEnd()
	return m.modalInput.Focus()
}

func (m *appModel) openConfirmDelete(t model.Task) {
	m.modal = modalConfirmDelete
	m.modalForID = t.ID
	m.confirmFocus = confirmFocusCancel
}

func (m *appModel) openError(title, body string) {
	m.modal = modalError
	m.errorTitle = title
	m.errorBody = body
}

func (m *appModel) closeAllModals() {
	m.modal = modalNone
	m.modalForID = ""
	m.pendingText = ""
	m.errorTitle = ""
	m.errorBody = ""
	m.modalInput.Blur()
	m.modalInput.Reset()
}

func (m *appModel) showMinibuffer(text string) tea.Cmd {
	m.minibufferText = text
	m.minibufferSeq++
	seq := m.minibufferSeq
	return tea.Tick(minibufferTTL, func(time.Time) tea.Msg { return minibufferClearMsg{seq: seq} })
}
