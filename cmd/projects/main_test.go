package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bdutremble/projects/internal/config"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	require.Equal(t, slog.LevelInfo, parseLogLevel("info"))
	require.Equal(t, slog.LevelError, parseLogLevel("error"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("bogus"))
}

func TestEnsureDBDir(t *testing.T) {
	require.NoError(t, ensureDBDir(":memory:"))

	path := filepath.Join(t.TempDir(), "nested", "data", "projects.db")
	require.NoError(t, ensureDBDir(path))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestLogFileWriter_TruncatesToNewest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "projects.log")
	w, file, err := newLogFileWriter(path)
	require.NoError(t, err)
	defer file.Close()

	chunk := []byte(strings.Repeat("a", 1024*1024))
	for i := 0; i < 6; i++ {
		_, err := w.Write(chunk)
		require.NoError(t, err)
	}
	_, err = w.Write([]byte("tail\n"))
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(keepLogSizeBytes), info.Size())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(data), "tail\n"))
}

func TestRun_PersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{
		DB: config.DBConfig{
			Driver:          "sqlite",
			DSN:             filepath.Join(t.TempDir(), "data", "projects.db"),
			ConnectAttempts: 1,
		},
	}
	logger := slog.New(slog.DiscardHandler)

	first := strings.Join([]string{
		"1", "Deck", "10", "", "3", "build a deck",
		"3", "1",
		"6", "buy wood",
		"",
	}, "\n") + "\n"
	var out bytes.Buffer
	require.NoError(t, run(ctx, cfg, logger, strings.NewReader(first), &out))
	require.Contains(t, out.String(), "You have successfully created project: 1: Deck")
	require.Contains(t, out.String(), "Exiting the menu. Thanks for using this program!")

	out.Reset()
	require.NoError(t, run(ctx, cfg, logger, strings.NewReader("3\n1\n\n"), &out))
	got := out.String()
	require.Contains(t, got, "   1: Deck")
	require.Contains(t, got, "You are working with project: 1: Deck")
	require.Contains(t, got, "   estimated hours=10.00, actual hours=-, difficulty=3")
	require.Contains(t, got, "      1. buy wood")
}
