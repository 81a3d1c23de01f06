package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"todo-cli/internal/model"
)

func TestBackupCorrupt_CopiesBytesAndKeepsOriginal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.json")
	raw := []byte("{not json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	first, err := BackupCorrupt(path, now)
	if err != nil {
		t.Fatalf("BackupCorrupt: %v", err)
	}
	if want := path + ".corrupt-20250102T030405Z"; first != want {
		t.Fatalf("backup path: want %s got %s", want, first)
	}
	second, err := BackupCorrupt(path, now)
	if err != nil {
		t.Fatalf("BackupCorrupt (second): %v", err)
	}
	if second == first {
		t.Fatalf("expected a distinct second backup path")
	}

	b, err := os.ReadFile(first)
	if err != nil || string(b) != string(raw) {
		t.Fatalf("backup content mismatch: %q (%v)", b, err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("original should remain: %v", err)
	}
}

func TestLoadWithRecovery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("fail policy surfaces corrupt data", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "tasks.json")
		if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadWithRecovery(ctx, NewJSONFile(path, nil), PolicyFail, nil)
		if !errors.Is(err, ErrCorruptData) {
			t.Fatalf("expected ErrCorruptData; got %v", err)
		}
	})

	t.Run("backup policy starts empty and keeps a copy", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "tasks.json")
		if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
			t.Fatal(err)
		}
		res, err := LoadWithRecovery(ctx, NewJSONFile(path, nil), PolicyBackup, nil)
		if err != nil {
			t.Fatalf("LoadWithRecovery: %v", err)
		}
		if !res.Recovered || len(res.Tasks) != 0 {
			t.Fatalf("expected recovered empty result; got %#v", res)
		}
		if !strings.HasPrefix(res.BackupPath, path+".corrupt-") {
			t.Fatalf("unexpected backup path %q", res.BackupPath)
		}
		b, err := os.ReadFile(res.BackupPath)
		if err != nil || string(b) != "garbage" {
			t.Fatalf("backup content mismatch: %q (%v)", b, err)
		}
		if res.Warning == "" {
			t.Fatalf("expected a warning")
		}
	})

	t.Run("healthy file is returned as is", func(t *testing.T) {
		t.Parallel()
		s := NewJSONFile(filepath.Join(t.TempDir(), "tasks.json"), nil)
		if err := s.Save(ctx, []model.Task{{Text: "A", Status: model.StatusDone}}); err != nil {
			t.Fatal(err)
		}
		res, err := LoadWithRecovery(ctx, s, PolicyBackup, nil)
		if err != nil {
			t.Fatalf("LoadWithRecovery: %v", err)
		}
		if res.Recovered || len(res.Tasks) != 1 {
			t.Fatalf("unexpected result %#v", res)
		}
	})
}
