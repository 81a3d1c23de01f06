// Package logrus adapts a logrus entry to log.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"todo-cli/internal/log"
)

type logger struct {
	*logrus.Entry
}

// NewLogrus returns a log.Logger backed by the given logrus entry.
func NewLogrus(l *logrus.Entry) log.Logger {
	return logger{Entry: l}
}

func (l logger) WithValues(kv log.Kv) log.Logger {
	return NewLogrus(l.Entry.WithFields(kv))
}
