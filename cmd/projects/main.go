package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bdutremble/projects/internal/cli"
	"github.com/bdutremble/projects/internal/config"
	"github.com/bdutremble/projects/internal/domain/project"
	"github.com/bdutremble/projects/internal/store"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Stdout belongs to the menu, so logs go to stderr or a file.
	logWriter := io.Writer(os.Stderr)
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := run(context.Background(), cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error("projects console failed", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, in io.Reader, out io.Writer) error {
	if cfg.DB.Driver == store.DriverSQLite {
		if err := ensureDBDir(cfg.DB.DSN); err != nil {
			return fmt.Errorf("prepare database path: %w", err)
		}
	}

	db, err := store.Open(ctx, store.Options{
		Driver:          cfg.DB.Driver,
		DSN:             cfg.DB.DSN,
		ConnectAttempts: cfg.DB.ConnectAttempts,
		Logger:          logger,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	projectSvc := project.NewService(store.NewProjectRepository(db), logger)

	app, err := cli.New(cli.Config{
		Service:   projectSvc,
		In:        in,
		Out:       out,
		Logger:    logger,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
