// Package rest is the HTTP/JSON transport of the blog API.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/blogkeeper/internal/logging"
	"github.com/dmitrijs2005/blogkeeper/internal/server/auth"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
	"github.com/dmitrijs2005/blogkeeper/internal/server/services"
)

// UserService is what the account and login handlers need.
type UserService interface {
	Login(ctx context.Context, userName, password string) (string, error)
	Create(ctx context.Context, in services.NewAccount) (string, error)
	Get(ctx context.Context, id string) (*models.Account, error)
	Update(ctx context.Context, id string, in services.AccountUpdate) (*models.Account, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Account, error)
}

// PostService is what the post handlers need.
type PostService interface {
	Create(ctx context.Context, in *models.Post) (string, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, id string, in *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Post, error)
}

// Pinger reports store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

type Server struct {
	address         string
	shutdownTimeout time.Duration
	logger          logging.Logger
	users           UserService
	posts           PostService
	guard           *auth.Guard
	store           Pinger
}

func NewServer(address string, shutdownTimeout time.Duration, l logging.Logger,
	users UserService, posts PostService, guard *auth.Guard, store Pinger) *Server {
	return &Server{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "rest_server"),
		users:           users,
		posts:           posts,
		guard:           guard,
		store:           store,
	}
}

// Handler returns the full middleware-wrapped router.
func (s *Server) Handler() http.Handler {
	return s.routes()
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.address, err)
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listen)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
