// Package server initializes and runs the FieldVault server: it opens the
// database, runs migrations, prepares the staging area, wires the services
// and serves the HTTP API until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/metco-eng/fieldvault/internal/archive"
	"github.com/metco-eng/fieldvault/internal/logging"
	"github.com/metco-eng/fieldvault/internal/mirror"
	"github.com/metco-eng/fieldvault/internal/server/config"
	"github.com/metco-eng/fieldvault/internal/server/httpapi"
	"github.com/metco-eng/fieldvault/internal/server/repositories/repomanager"
	"github.com/metco-eng/fieldvault/internal/server/services"
	"github.com/metco-eng/fieldvault/internal/staging"
)

// imagesSubdir is the staging directory under the upload root.
const imagesSubdir = "Images"

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler *httpapi.Handler
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewSqliteRepositoryManager()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("repository manager init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	area, err := staging.New(filepath.Join(cfg.UploadDir, imagesSubdir))
	if err != nil {
		db.Close()
		return nil, err
	}

	searchService := services.NewSearchService(cfg, logger)
	recordService := services.NewRecordService(
		cfg,
		area,
		archive.NewBuilder(area),
		repomanager.NewSubmissionStore(db, rm),
		mirror.NewUploader(cfg, logger),
		logger,
	)
	archiveService := services.NewArchiveService(rm.Archives(db), logger)

	handler := httpapi.NewHandler(searchService, recordService, archiveService, area, logger)

	return &App{config: cfg, logger: logger, db: db, handler: handler}, nil
}

// Run serves the HTTP API until the context is cancelled or a termination
// signal arrives, then shuts down within the configured timeout.
func (app *App) Run(ctx context.Context) error {
	defer app.db.Close()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.handler.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "http server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case sig := <-sigs:
		app.logger.Info(ctx, "shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown error: %w", err)
	}

	app.logger.Info(ctx, "http server stopped")
	return nil
}
