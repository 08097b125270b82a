package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/mediasync/internal/api/v1"
	"github.com/vmunix/mediasync/internal/config"
	"github.com/vmunix/mediasync/internal/events"
	"github.com/vmunix/mediasync/internal/handlers"
	"github.com/vmunix/mediasync/internal/importer"
	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/mediaimport"
	"github.com/vmunix/mediasync/internal/migrations"
	"github.com/vmunix/mediasync/internal/registry"
	"github.com/vmunix/mediasync/internal/scheduler"
	"github.com/vmunix/mediasync/internal/search"
	"github.com/vmunix/mediasync/internal/server"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations, tracking video domain readiness
	dbStatus := library.NewStatusRegistry()
	dbStatus.SetState(library.DomainVideo, library.DomainUpdating)
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		dbStatus.SetState(library.DomainVideo, library.DomainFailed)
		return fmt.Errorf("migrate: %w", err)
	}
	dbStatus.SetState(library.DomainVideo, library.DomainReady)

	// === Stores ===
	libraryStore := library.NewStore(db)
	registryStore := registry.NewStore(db)

	// === Events ===
	eventLog := events.NewEventLog(db)
	bus := events.NewBus(eventLog, logger.With("component", "events"))
	defer func() { _ = bus.Close() }()

	// === Services ===
	manager := mediaimport.NewManager(libraryStore, logger.With("component", "mediaimport"))
	synchronizer := mediaimport.NewSynchronizer(libraryStore, registryStore, manager, bus, logger.With("component", "sync"))
	cleaner := mediaimport.NewCleaner(libraryStore, registryStore, manager, logger.With("component", "cleanup"))
	importers := importer.NewRegistry(logger.With("component", "importer"))
	searcher := search.NewSearcher(libraryStore, logger.With("component", "search"))

	syncService := server.NewSyncService(registryStore, libraryStore, synchronizer, importers, logger.With("component", "syncservice"))

	// Item enabled flags follow source active state; reconcile once at
	// boot in case sources changed while the daemon was down.
	if !dbStatus.CanOpen(library.DomainVideo) {
		return fmt.Errorf("video database not ready")
	}
	if err := syncService.ReconcileEnabled(); err != nil {
		return fmt.Errorf("reconcile enabled items: %w", err)
	}

	// === Background Jobs ===
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupHandler := handlers.NewCleanupHandler(bus, registryStore, cleaner,
		handlers.CleanupConfig{Enabled: cfg.Sync.ShouldCleanupAfterSync()},
		logger)

	sched, err := scheduler.New(registryStore,
		func(ctx context.Context, imp *registry.Import) error {
			_, err := syncService.SyncImport(ctx, imp)
			return err
		},
		cfg.Sync.Interval.Duration, logger.With("component", "scheduler"))
	if err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	runner := server.NewRunner(
		[]handlers.Handler{cleanupHandler},
		sched,
		eventLog,
		cfg.Events.Retention.Duration,
		logger.With("component", "runner"),
	)
	runnerDone := make(chan error, 1)
	go func() { runnerDone <- runner.Run(ctx) }()

	// === HTTP Setup ===
	mux := http.NewServeMux()

	apiV1, err := v1.New(v1.ServerDeps{
		Library:   libraryStore,
		Registry:  registryStore,
		Sync:      syncService,
		Cleaner:   cleaner,
		Searcher:  searcher,
		Scheduler: sched,
		EventLog:  eventLog,
	})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	apiV1.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"sync_interval", cfg.Sync.Interval.Duration.String(),
		"cleanup_after_sync", cfg.Sync.ShouldCleanupAfterSync(),
		"protocols", importers.Protocols(),
		"log_level", cfg.Server.LogLevel,
	)

	srv := &http.Server{Addr: addr, Handler: logRequests(mux, logger)}

	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig.String())

	// Stop background jobs and wait for handlers to drain
	cancel()
	if err := <-runnerDone; err != nil {
		logger.Error("runner error", "error", err)
	}

	// Graceful HTTP shutdown with 30s timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
