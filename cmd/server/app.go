package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/memoro-app/memoro-api/internal/config"
	"github.com/memoro-app/memoro-api/internal/domain/match"
	"github.com/memoro-app/memoro-api/internal/domain/srs"
	"github.com/memoro-app/memoro-api/internal/platform/logger"
	"github.com/memoro-app/memoro-api/internal/platform/postgres"
	"github.com/memoro-app/memoro-api/internal/service"
	"github.com/memoro-app/memoro-api/internal/service/quiz"
	"github.com/memoro-app/memoro-api/internal/store"
)

// application holds the wired dependencies for the running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	db          *sql.DB
	itemStore   store.ItemStore
	scheduler   srs.Service
	quizService quiz.Service
}

// newApplication loads configuration and wires every component, from the
// database connection up to the quiz service.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("sensitivity", cfg.Review.Sensitivity))

	db, err := openDatabase(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	if err := postgres.Migrate(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	itemStore := postgres.NewPostgresItemStore(db, log)
	scheduler := srs.NewDefaultService()
	adapter := srs.NewAdapter()

	matcher, err := match.New(match.Sensitivity(cfg.Review.Sensitivity))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to build answer matcher: %w", err)
	}

	itemRepo := service.NewItemRepositoryAdapter(itemStore, db)
	quizService, err := quiz.NewService(itemRepo, scheduler, adapter, matcher, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to build quiz service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      log,
		db:          db,
		itemStore:   itemStore,
		scheduler:   scheduler,
		quizService: quizService,
	}, nil
}

// openDatabase connects to PostgreSQL and verifies the connection.
func openDatabase(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
