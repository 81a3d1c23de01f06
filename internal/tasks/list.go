// Package tasks is the in-memory task list and its operations.
//
// List owns the sequence. Every mutating operation persists the full
// sequence through a Saver right after the in-memory change succeeds.
// Positions are indexes into the current (sorted) sequence; callers that
// hold on to a task across renders should keep its ID and resolve it with
// IndexOf right before dispatching.
package tasks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"todo-cli/internal/log"
	"todo-cli/internal/model"
)

// Saver persists the full task sequence.
type Saver interface {
	Save(ctx context.Context, tasks []model.Task) error
}

type List struct {
	tasks  []model.Task
	saver  Saver
	logger log.Logger
}

// Row is a task paired with its position in the sorted sequence.
type Row struct {
	Index int
	Task  model.Task
}

// New wraps tasks (as loaded from the store). Tasks without an ID get one.
func New(tasks []model.Task, saver Saver, logger log.Logger) *List {
	if logger == nil {
		logger = log.Noop
	}
	own := make([]model.Task, len(tasks))
	copy(own, tasks)
	for i := range own {
		if own[i].ID == "" {
			own[i].ID = model.NewTaskID()
		}
	}
	return &List{tasks: own, saver: saver, logger: logger.WithValues(log.Kv{"svc": "tasks.List"})}
}

func (l *List) Len() int { return len(l.tasks) }

// Tasks returns a copy of the current sequence.
func (l *List) Tasks() []model.Task {
	out := make([]model.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// At returns the task at index.
func (l *List) At(index int) (model.Task, error) {
	if err := l.checkIndex(index); err != nil {
		return model.Task{}, err
	}
	return l.tasks[index], nil
}

// IndexOf returns the current position of the task with id.
func (l *List) IndexOf(id string) (int, bool) {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Add appends a new in-progress task. Empty text or a malformed due date is a
// ValidationError and leaves the list untouched.
func (l *List) Add(ctx context.Context, text, due string) (model.Task, error) {
	text, err := ValidateText(text)
	if err != nil {
		return model.Task{}, err
	}
	due, err = ValidateDue(due)
	if err != nil {
		return model.Task{}, err
	}

	t := model.Task{
		ID:     model.NewTaskID(),
		Text:   text,
		Status: model.StatusInProgress,
		Due:    due,
	}
	l.tasks = append(l.tasks, t)
	l.logger.WithValues(log.Kv{"id": t.ID, "due": due}).Infof("task added")
	return t, l.persist(ctx)
}

// Edit replaces the text at index. Empty newText is silently ignored, unlike
// Add which rejects it.
func (l *List) Edit(ctx context.Context, index int, newText string) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	newText = strings.TrimSpace(newText)
	if newText == "" || newText == l.tasks[index].Text {
		return nil
	}
	l.tasks[index].Text = newText
	l.logger.WithValues(log.Kv{"id": l.tasks[index].ID}).Infof("task edited")
	return l.persist(ctx)
}

// Toggle flips the status at index between in-progress and done.
func (l *List) Toggle(ctx context.Context, index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	l.tasks[index].Status = l.tasks[index].Status.Toggled()
	l.logger.WithValues(log.Kv{"id": l.tasks[index].ID, "status": l.tasks[index].Status}).Infof("task toggled")
	return l.persist(ctx)
}

// Delete removes the task at index. Asking the user is the caller's job.
func (l *List) Delete(ctx context.Context, index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	id := l.tasks[index].ID
	l.tasks = append(l.tasks[:index], l.tasks[index+1:]...)
	l.logger.WithValues(log.Kv{"id": id}).Infof("task deleted")
	return l.persist(ctx)
}

// Sort orders the sequence in place: incomplete first, then by due date
// (no due date first). Positions change; nothing is saved.
func (l *List) Sort() {
	Sort(l.tasks)
}

// View sorts the sequence and returns the rows visible under f.
func (l *List) View(f model.Filter) []Row {
	l.Sort()
	rows := make([]Row, 0, len(l.tasks))
	for i, t := range l.tasks {
		if f.Matches(t.Status) {
			rows = append(rows, Row{Index: i, Task: t})
		}
	}
	return rows
}

func (l *List) checkIndex(index int) error {
	if index < 0 || index >= len(l.tasks) {
		return &IndexError{Index: index, Len: len(l.tasks)}
	}
	return nil
}

func (l *List) persist(ctx context.Context) error {
	if l.saver == nil {
		return nil
	}
	if err := l.saver.Save(ctx, l.tasks); err != nil {
		l.logger.Errorf("save failed: %v", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// Less is the two-key ordering: status == done (false first), then due as a
// string. "" sorts before any date, and YYYY-MM-DD sorts chronologically.
func Less(a, b model.Task) bool {
	if a.Done() != b.Done() {
		return !a.Done()
	}
	return a.Due < b.Due
}

// Sort stable-sorts tasks in place.
func Sort(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool { return Less(tasks[i], tasks[j]) })
}

// Filter returns the tasks matching f, or all of them for FilterAll.
func Filter(tasks []model.Task, f model.Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t.Status) {
			out = append(out, t)
		}
	}
	return out
}
