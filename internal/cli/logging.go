package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"todo-cli/internal/config"
	"todo-cli/internal/log"
	loglogrus "todo-cli/internal/log/logrus"
)

// newLogger builds the file logger described by cfg. The TUI owns the
// terminal, so logs never go to stdout/stderr.
func newLogger(cfg *config.Config) (log.Logger, func() error, error) {
	if cfg.LogFile == "" {
		return log.Noop, func() error { return nil }, nil
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("could not create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(f)
	l.SetLevel(level)
	switch cfg.LogFormat {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	logger := loglogrus.NewLogrus(logrus.NewEntry(l)).WithValues(log.Kv{
		"app": "todo",
		"pid": os.Getpid(),
	})
	return logger, f.Close, nil
}
