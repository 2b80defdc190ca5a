// Package server wires the blog API together: it opens the configured
// document store, builds the services and runs the HTTP server until the
// process is told to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/logging"
	"github.com/dmitrijs2005/blogkeeper/internal/server/auth"
	"github.com/dmitrijs2005/blogkeeper/internal/server/config"
	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore"
	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore/bolt"
	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore/memory"
	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore/postgres"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogkeeper/internal/server/rest"
	"github.com/dmitrijs2005/blogkeeper/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       repomanager.RepositoryManager
	userService *services.UserService
	server      *rest.Server
}

// NewApp validates c, opens the store and builds every component. Logs go
// to stdout as JSON.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, slog.LevelInfo)
	return newApp(ctx, c, logger, auth.NewPasswordHasher())
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, hasher services.PasswordHasher) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	store, err := openStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	tokens, err := auth.NewTokenService(c.SecretKey, c.AccessTokenValidityDuration)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	rm := repomanager.NewDocumentRepositoryManager(store)
	us := services.NewUserService(rm.Users(), hasher, tokens)
	ps := services.NewPostService(rm.Posts(), rm.Users())

	srv := rest.NewServer(c.EndpointAddrHTTP, c.ShutdownTimeout, logger, us, ps, auth.NewGuard(tokens), rm)

	return &App{config: c, logger: logger, repos: rm, userService: us, server: srv}, nil
}

func openStore(ctx context.Context, c *config.Config) (docstore.Store, error) {
	switch c.Store {
	case config.StoreMemory:
		return memory.New(), nil
	case config.StoreBolt:
		return bolt.Open(c.BoltPath)
	case config.StorePostgres:
		return postgres.Open(ctx, c.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown store %q", c.Store)
	}
}

// bootstrap creates the configured first account unless it already exists.
func (app *App) bootstrap(ctx context.Context) error {
	if app.config.BootstrapUser == "" {
		return nil
	}

	_, err := app.userService.Create(ctx, services.NewAccount{
		UserName: app.config.BootstrapUser,
		Password: app.config.BootstrapPassword,
		Name:     app.config.BootstrapUser,
	})
	switch {
	case err == nil:
		app.logger.Info(ctx, "Bootstrap account created", "user", app.config.BootstrapUser)
	case errors.Is(err, common.ErrorConflict):
		app.logger.Debug(ctx, "Bootstrap account already exists", "user", app.config.BootstrapUser)
	default:
		return fmt.Errorf("bootstrap account: %w", err)
	}
	return nil
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

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "config", app.config.String())

	app.initSignalHandler(cancelFunc)

	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Error(ctx, "store close error", "error", err.Error())
		}
	}()

	if err := app.bootstrap(ctx); err != nil {
		return err
	}

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
