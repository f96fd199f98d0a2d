package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ritmoapp/ritmo/internal/config"
	"github.com/ritmoapp/ritmo/internal/db"
	"github.com/ritmoapp/ritmo/internal/profile"
	"github.com/ritmoapp/ritmo/internal/sched"
	"github.com/ritmoapp/ritmo/internal/task"
	"github.com/ritmoapp/ritmo/internal/ui"
)

// sessionWindow bounds how much history is loaded into the session store.
const sessionWindow = 365 * 24 * time.Hour

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	grid, err := cfg.Grid()
	if err != nil {
		return fmt.Errorf("invalid schedule config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() { _ = repo.Close() }()

	ctx := context.Background()
	now := time.Now()
	tasks, err := repo.ListTasksByDateRange(ctx, now.Add(-sessionWindow), now.Add(sessionWindow))
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	store, err := task.NewStoreWith(tasks)
	if err != nil {
		return fmt.Errorf("seeding session store: %w", err)
	}

	if cfg.Profile.ID != "" {
		provider := profile.NewFileProvider(filepath.Join(filepath.Dir(config.DefaultConfigPath()), "profile.toml"))
		if _, err := profile.Bootstrap(ctx, provider, cfg.Profile.ID, cfg.Profile.Email, cfg.Profile.Name); err != nil {
			fmt.Fprintf(os.Stderr, "warning: profile bootstrap failed: %v\n", err)
		}
	}

	svc := sched.NewService(store, grid, repo, time.Now)
	app := ui.NewApp(svc, repo, cfg)
	return app.Execute()
}
