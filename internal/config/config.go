// Package config loads layered settings: defaults, a TOML file, environment
// variables, and finally command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultTaskFile      = "tasks.json"
	DefaultStore         = StoreJSONFile
	DefaultCorruptPolicy = CorruptPolicyBackup
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"

	configFileName = "config.toml"
	appDirName     = "todo"
)

const (
	StoreJSONFile = "jsonfile"
	StoreSQLite   = "sqlite"
)

const (
	CorruptPolicyFail   = "fail"
	CorruptPolicyBackup = "backup"
)

type Config struct {
	// File is the task file path (JSON array or SQLite database).
	File          string `toml:"file" json:"file" yaml:"file"`
	Store         string `toml:"store" json:"store" yaml:"store"`
	CorruptPolicy string `toml:"corrupt_policy" json:"corrupt_policy" yaml:"corrupt_policy"`

	LogFile   string `toml:"log_file" json:"log_file" yaml:"log_file"`
	LogLevel  string `toml:"log_level" json:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" json:"log_format" yaml:"log_format"`

	TUI TUIConfig `toml:"tui" json:"tui" yaml:"tui"`

	// Path of the config file that was read, if any.
	Source string `toml:"-" json:"source,omitempty" yaml:"source,omitempty"`
}

type TUIConfig struct {
	// Theme is light, dark or auto.
	Theme string `toml:"theme" json:"theme" yaml:"theme"`
	// Glyphs is unicode or ascii.
	Glyphs string `toml:"glyphs" json:"glyphs" yaml:"glyphs"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		File:          DefaultTaskFile,
		Store:         DefaultStore,
		CorruptPolicy: DefaultCorruptPolicy,
		LogFile:       defaultLogFile(),
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		TUI:           TUIConfig{Theme: "auto", Glyphs: "unicode"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/todo/config.toml (or the OS equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDirName, configFileName)
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appDirName+".log")
	}
	return filepath.Join(dir, appDirName, appDirName+".log")
}

// Load builds the configuration from defaults, the TOML file at path, and
// the environment. An empty path means TODO_CONFIG or DefaultPath. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if path == "" {
		path = os.Getenv("TODO_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath()
	}
	path = expandPath(path)

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) || explicit {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else {
			cfg.Source = path
		}
	}

	loadFromEnv(cfg)

	cfg.File = expandPath(cfg.File)
	cfg.LogFile = expandPath(cfg.LogFile)
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODO_FILE"); v != "" {
		cfg.File = v
	}
	if v := os.Getenv("TODO_STORE"); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv("TODO_CORRUPT_POLICY"); v != "" {
		cfg.CorruptPolicy = v
	}
	if v := os.Getenv("TODO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("TODO_TUI_GLYPHS"); v != "" {
		cfg.TUI.Glyphs = v
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.File) == "" {
		return errors.New("file must not be empty")
	}
	switch c.Store {
	case StoreJSONFile, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want %s|%s)", c.Store, StoreJSONFile, StoreSQLite)
	}
	switch c.CorruptPolicy {
	case CorruptPolicyFail, CorruptPolicyBackup:
	default:
		return fmt.Errorf("unknown corrupt_policy %q (want %s|%s)", c.CorruptPolicy, CorruptPolicyFail, CorruptPolicyBackup)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q (want text|json)", c.LogFormat)
	}
	return nil
}

// expandPath expands ~/ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
