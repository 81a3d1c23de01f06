package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-cli/internal/log"
	"todo-cli/internal/model"
	"todo-cli/internal/store"
)

func newSQLite(t *testing.T, path string) *store.SQLite {
	t.Helper()
	s, err := store.NewSQLite(context.Background(), path, log.Noop)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_EmptyDatabaseLoadsEmpty(t *testing.T) {
	s := newSQLite(t, filepath.Join(t.TempDir(), "tasks.db"))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLite_SaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.db")
	s := newSQLite(t, path)

	want := []model.Task{
		{ID: "01A", Text: "C", Status: model.StatusInProgress, Due: ""},
		{ID: "01B", Text: "A", Status: model.StatusInProgress, Due: "2024-06-01"},
		{ID: "01C", Text: "B", Status: model.StatusDone, Due: ""},
	}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Saving a shorter sequence replaces everything.
	require.NoError(t, s.Save(ctx, want[:1]))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want[:1], got)

	// Reopening keeps data and does not re-run the schema migration.
	require.NoError(t, s.Close())
	s2 := newSQLite(t, path)
	got, err = s2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want[:1], got)
}

func TestOpenWithRecovery_SQLiteGarbageIsMovedAside(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.db")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("not a database ", 64)), 0o644))

	_, _, err := store.OpenWithRecovery(ctx, store.Config{Kind: store.KindSQLite, Path: path}, store.PolicyFail)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrCorruptData), "got %v", err)

	s, res, err := store.OpenWithRecovery(ctx, store.Config{Kind: store.KindSQLite, Path: path}, store.PolicyBackup)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.True(t, res.Recovered)
	assert.Empty(t, res.Tasks)
	assert.FileExists(t, res.BackupPath)
	require.NoError(t, s.Save(ctx, []model.Task{{Text: "fresh", Status: model.StatusInProgress}}))
}

func TestOpen(t *testing.T) {
	tests := map[string]struct {
		cfg    store.Config
		expErr bool
		expTyp any
	}{
		"Default kind is the JSON file.": {
			cfg:    store.Config{Path: filepath.Join(t.TempDir(), "tasks.json")},
			expTyp: &store.JSONFile{},
		},
		"SQLite kind.": {
			cfg:    store.Config{Kind: store.KindSQLite, Path: filepath.Join(t.TempDir(), "tasks.db")},
			expTyp: &store.SQLite{},
		},
		"Unknown kind fails.": {
			cfg:    store.Config{Kind: "csv", Path: "x"},
			expErr: true,
		},
		"Missing path fails.": {
			cfg:    store.Config{},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := store.Open(context.Background(), test.cfg)
			if test.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			assert.IsType(t, test.expTyp, s)
		})
	}
}
