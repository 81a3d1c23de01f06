package model

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the two task states.
func (s Status) Valid() bool {
	return s == StatusInProgress || s == StatusDone
}

// Toggled returns the other state.
func (s Status) Toggled() Status {
	if s == StatusDone {
		return StatusInProgress
	}
	return StatusDone
}

type Task struct {
	// ID is assigned in memory on create/load. The JSON file does not carry it.
	ID     string `json:"-" yaml:"-"`
	Text   string `json:"text" yaml:"text"`
	Status Status `json:"status" yaml:"status"`
	Due    string `json:"due" yaml:"due"` // YYYY-MM-DD or ""
}

func (t Task) Done() bool { return t.Status == StatusDone }

type Filter string

const (
	FilterAll        Filter = "all"
	FilterInProgress Filter = "in-progress"
	FilterDone       Filter = "done"
)

// Filters is the selector order used by the UI.
var Filters = []Filter{FilterAll, FilterInProgress, FilterDone}

func ParseFilter(s string) (Filter, bool) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, true
	case FilterInProgress:
		return FilterInProgress, true
	case FilterDone:
		return FilterDone, true
	default:
		return FilterAll, false
	}
}

// Matches reports whether a task with status s is visible under f.
func (f Filter) Matches(s Status) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return Status(f) == s
}

// Next cycles all -> in-progress -> done -> all.
func (f Filter) Next() Filter {
	for i, x := range Filters {
		if x == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// NewTaskID returns a fresh, time-ordered task identifier.
func NewTaskID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
