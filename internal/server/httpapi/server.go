// Package httpapi exposes accounts and tasks over HTTP/JSON using echo.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// AccountService is the account logic the handlers rely on.
type AccountService interface {
	Register(ctx context.Context, email, password string) (*models.Account, string, error)
	Login(ctx context.Context, email, password string) (*models.Account, string, error)
	Authenticate(ctx context.Context, token string) (string, error)
	Me(ctx context.Context, accountID string) (*models.Account, error)
	Logout(ctx context.Context, accountID, token string) error
}

// TaskService is the task logic the handlers rely on. Every call is scoped
// to the authenticated account.
type TaskService interface {
	Create(ctx context.Context, ownerID, text string) (*models.Task, error)
	List(ctx context.Context, ownerID string) ([]*models.Task, error)
	Get(ctx context.Context, ownerID, id string) (*models.Task, error)
	Update(ctx context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id string) (*models.Task, error)
}

type Server struct {
	address         string
	shutdownTimeout time.Duration
	logger          logging.Logger
	accounts        AccountService
	tasks           TaskService
	echo            *echo.Echo
}

func NewServer(address string, shutdownTimeout time.Duration, l logging.Logger, accounts AccountService, tasks TaskService) *Server {
	s := &Server{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "http_server"),
		accounts:        accounts,
		tasks:           tasks,
	}
	s.echo = s.newEcho()
	return s
}

func (s *Server) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(echomw.RequestID())
	e.Use(s.accessLog())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowHeaders:  []string{echo.HeaderContentType, common.AuthHeaderName},
		ExposeHeaders: []string{common.AuthHeaderName},
	}))

	e.GET("/health", s.health)

	e.POST("/accounts", s.register)
	e.POST("/accounts/login", s.login)

	me := e.Group("/accounts/me", s.authenticate)
	me.GET("", s.me)
	me.DELETE("/token", s.logout)

	// A malformed task id is rejected before the token is looked at.
	tasks := e.Group("/tasks")
	tasks.POST("", s.createTask, s.authenticate)
	tasks.GET("", s.listTasks, s.authenticate)
	tasks.GET("/:id", s.getTask, validTaskID, s.authenticate)
	tasks.PATCH("/:id", s.updateTask, validTaskID, s.authenticate)
	tasks.DELETE("/:id", s.deleteTask, validTaskID, s.authenticate)

	return e
}

// Handler returns the routed handler, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "OK"})
}
