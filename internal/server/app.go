// Package server initializes and runs the application: it opens the
// database, applies migrations, wires the avatar storage backend and the
// services, and serves the HTTP API until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/avorobyov/taskkeeper/internal/logging"
	"github.com/avorobyov/taskkeeper/internal/server/avatars"
	"github.com/avorobyov/taskkeeper/internal/server/config"
	"github.com/avorobyov/taskkeeper/internal/server/repositories/repomanager"
	"github.com/avorobyov/taskkeeper/internal/server/rest"
	"github.com/avorobyov/taskkeeper/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	taskService *services.TaskService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, normalizer, err := newAvatarBackend(ctx, cfg, db, rm)
	if err != nil {
		return nil, fmt.Errorf("avatar backend error: %w", err)
	}

	us := services.NewUserService(db, rm, store, normalizer, cfg)
	ts := services.NewTaskService(db, rm)

	return &App{config: cfg, logger: logger, db: db, userService: us, taskService: ts}, nil
}

func newAvatarBackend(ctx context.Context, cfg *config.Config, db *sql.DB, rm repomanager.RepositoryManager) (avatars.Store, avatars.Normalizer, error) {
	normalizer := &avatars.ImageNormalizer{MaxBytes: cfg.AvatarMaxBytes}

	switch cfg.AvatarBackend {
	case config.AvatarBackendPostgres:
		return avatars.NewPostgresStore(db, rm), normalizer, nil
	case config.AvatarBackendS3:
		store, err := avatars.NewS3Store(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, normalizer, nil
	default:
		return nil, nil, fmt.Errorf("unknown avatar backend %q", cfg.AvatarBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config, app.logger, app.userService, app.taskService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
