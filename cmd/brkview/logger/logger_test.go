package logger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	path, err := Init(Options{Enabled: false, LogDir: t.TempDir()})
	require.NoError(t, err)
	require.Empty(t, path)
	require.False(t, L.Enabled(t.Context(), slog.LevelError))
}

func TestInit_WritesJSON(t *testing.T) {
	dir := t.TempDir()
	path, err := Init(Options{Enabled: true, LogDir: dir, Level: slog.LevelDebug})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = Init(Options{}) })

	require.Equal(t, dir, filepath.Dir(path))
	require.True(t, strings.HasPrefix(filepath.Base(path), logPrefix))

	Debug("heap grew", "bytes", 64)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	require.NotEmpty(t, line)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	require.Equal(t, "heap grew", rec["msg"])
	require.Equal(t, "DEBUG", rec["level"])
	require.InDelta(t, 64, rec["bytes"], 0)
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	old := logName(now.AddDate(0, 0, -retentionDays-1))
	recent := logName(now.AddDate(0, 0, -1))
	other := "notes-2020-01-01.log"
	for _, name := range []string{old, recent, other} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	cleanOldLogs(dir, now)

	require.NoFileExists(t, filepath.Join(dir, old))
	require.FileExists(t, filepath.Join(dir, recent))
	require.FileExists(t, filepath.Join(dir, other))
}
