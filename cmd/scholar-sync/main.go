package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/lysyi3m/scholar-sync/app/cfg"
	"github.com/lysyi3m/scholar-sync/app/content"
	"github.com/lysyi3m/scholar-sync/app/database"
	"github.com/lysyi3m/scholar-sync/app/feed"
	"github.com/lysyi3m/scholar-sync/app/migrate"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const migrateUsage = "usage: scholar-sync migrate [--output DIR] [--sync-feeds] SOURCE"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	config, err := cfg.Load(args)
	if err != nil {
		return exitUsage
	}
	if config == nil {
		return exitOK
	}

	setupLogger(stderr, config.Debug)
	slog.Debug("Configuration loaded", "command", config.Command, "version", config.Version)

	switch config.Command {
	case cfg.CommandMigrate:
		return runMigrate(ctx, config, stderr)
	case cfg.CommandSyncFeeds:
		return runSyncFeeds(ctx, config)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", config.Command)
		return exitUsage
	}
}

func setupLogger(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func runMigrate(ctx context.Context, config *cfg.Cfg, stderr io.Writer) int {
	migrator := migrate.NewMigrator(content.NewWriter(config.OutputDir))

	summary, err := migrator.Run(ctx, config.Source)
	if err != nil {
		if errors.Is(err, migrate.ErrNoSource) {
			fmt.Fprintln(stderr, migrateUsage)
			return exitUsage
		}
		slog.Error("Migration failed", "error", err)
		return exitFailure
	}

	summary.Log()

	if config.SyncFeeds {
		syncMigratedFeeds(ctx, config)
	}
	return exitOK
}

// syncMigratedFeeds fills the feed cache of a freshly migrated tree. A failed
// sync leaves the migration result standing.
func syncMigratedFeeds(ctx context.Context, config *cfg.Cfg) {
	configPath := filepath.Join(config.OutputDir, filepath.FromSlash(content.FeedConfig))
	feedsConfig, err := feed.LoadConfig(configPath)
	if err != nil {
		if errors.Is(err, feed.ErrNoSources) {
			slog.Info("No feed sources to sync", "path", configPath)
		} else {
			slog.Warn("Failed to load migrated feed configuration", "path", configPath, "error", err)
		}
		return
	}

	synchronizer := newSynchronizer(config, nil, filepath.Join(config.OutputDir, filepath.FromSlash(content.FeedCache)))
	result, err := synchronizer.Run(ctx, feedsConfig)
	if err != nil {
		slog.Warn("Feed sync after migration failed", "error", err)
		return
	}
	if result.Failed > 0 {
		slog.Warn("Some feeds failed", "failed", result.Failed)
	}
}

func newSynchronizer(config *cfg.Cfg, recorder feed.StatusRecorder, cachePath string) *feed.Synchronizer {
	return feed.NewSynchronizer(
		feed.NewFetcher(&http.Client{}, config.UserAgent),
		feed.NewParser(),
		feed.NewFilterer(),
		feed.NewContentExtractor(),
		recorder,
		cachePath,
	)
}

func runSyncFeeds(ctx context.Context, config *cfg.Cfg) int {
	feedsConfig, err := feed.LoadConfig(config.FeedsConfig)
	if err != nil {
		slog.Error("Failed to load feed configuration", "path", config.FeedsConfig, "error", err)
		return exitFailure
	}
	slog.Info("Loaded feed configuration", "feeds", len(feedsConfig.Feeds), "max_items", feedsConfig.MaxItemsPerFeed)

	var recorder feed.StatusRecorder
	if config.StateDB != "" {
		db, err := openLedger(config.StateDB)
		if err != nil {
			slog.Warn("Source status ledger unavailable", "path", config.StateDB, "error", err)
		} else {
			defer db.Close()
			recorder = database.NewSourceRepository(db)
		}
	}

	synchronizer := newSynchronizer(config, recorder, config.FeedCache)

	result, err := synchronizer.Run(ctx, feedsConfig)
	if err != nil {
		if errors.Is(err, feed.ErrAllSourcesFailed) {
			slog.Error("All feeds failed, cache left unchanged", "failed", result.Failed)
		} else {
			slog.Error("Feed sync failed", "error", err)
		}
		return exitFailure
	}

	if result.Failed > 0 {
		slog.Warn("Some feeds failed", "failed", result.Failed)
	}
	return exitOK
}

func openLedger(path string) (*database.DB, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("Source status ledger ready", "path", path, "version", version, "dirty", dirty)

	return db, nil
}
