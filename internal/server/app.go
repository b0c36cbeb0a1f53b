// Package server initializes and runs the credential service. It wires the
// configuration, the database pool, the schema check, the domain services and
// the HTTP endpoint, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/twinsight/dashboard-auth/internal/logging"
	"github.com/twinsight/dashboard-auth/internal/server/auth"
	"github.com/twinsight/dashboard-auth/internal/server/config"
	"github.com/twinsight/dashboard-auth/internal/server/credentials"
	"github.com/twinsight/dashboard-auth/internal/server/httpapi"
	"github.com/twinsight/dashboard-auth/internal/server/schema"
	"github.com/twinsight/dashboard-auth/internal/server/sessions"
	"github.com/twinsight/dashboard-auth/internal/server/shared/db"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       db.RepositoryManager
	authService *auth.Service
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	m, err := db.NewPostgresRepositoryManager(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	guard := schema.NewGuard(m.Conn())
	ok, err := guard.CheckSchema(ctx)
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("schema check error: %w", err)
	}
	if !ok {
		logger.Info(ctx, "schema missing, running migrations")
		if err := guard.InitSchema(ctx); err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("schema init error: %w", err)
		}
	}

	creds := credentials.NewManager(cfg.Pepper)
	sessionSvc := sessions.NewService(m.Sessions())
	authSvc := auth.NewService(m.Users(), sessionSvc, creds, logger)

	return &App{config: cfg, logger: logger, repos: m, authService: authSvc}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.authService, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}
