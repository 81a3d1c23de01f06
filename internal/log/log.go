// Package log defines the logger used across the application.
//
// The TUI owns the terminal, so concrete loggers write to a file. Use [Noop]
// when logging is disabled or in tests.
package log

// Kv is a set of structured key/value fields.
type Kv = map[string]any

// Logger is the application logger.
type Logger interface {
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
	WithValues(values Kv) Logger
}

// Noop discards everything.
const Noop = noop(0)

type noop int

func (noop) Infof(string, ...any)    {}
func (noop) Warningf(string, ...any) {}
func (noop) Errorf(string, ...any)   {}
func (noop) Debugf(string, ...any)   {}
func (n noop) WithValues(Kv) Logger  { return n }
