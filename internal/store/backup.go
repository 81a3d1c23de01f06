package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const corruptSuffixLayout = "20060102T150405Z"

// corruptBackupPath returns "<path>.corrupt-<UTC timestamp>", adding a counter
// when a backup with the same second already exists.
func corruptBackupPath(path string, now time.Time) string {
	base := fmt.Sprintf("%s.corrupt-%s", path, now.UTC().Format(corruptSuffixLayout))
	candidate := base
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// BackupCorrupt copies the file at path next to itself and returns the copy's path.
// The original is left in place; the next save overwrites it.
func BackupCorrupt(path string, now time.Time) (string, error) {
	path = filepath.Clean(path)
	dest := corruptBackupPath(path, now)

	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return "", err
	}
	return dest, out.Close()
}

// MoveCorrupt renames the file at path aside, dropping SQLite sidecar files.
func MoveCorrupt(path string, now time.Time) (string, error) {
	path = filepath.Clean(path)
	dest := corruptBackupPath(path, now)
	if err := os.Rename(path, dest); err != nil {
		return "", err
	}
	for _, side := range []string{path + "-wal", path + "-shm"} {
		if err := os.Remove(side); err != nil && !errors.Is(err, os.ErrNotExist) {
			return dest, err
		}
	}
	return dest, nil
}
