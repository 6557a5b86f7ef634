// Package rest exposes the HTTP API: signup/login, profile and avatar
// management, and ownership-scoped task CRUD. Handlers translate between
// JSON payloads and the service layer; all error mapping to status codes
// happens in one place.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avorobyov/taskkeeper/internal/logging"
	"github.com/avorobyov/taskkeeper/internal/server/config"
	"github.com/avorobyov/taskkeeper/internal/server/models"
	"github.com/avorobyov/taskkeeper/internal/server/repositories/tasks"
	"github.com/avorobyov/taskkeeper/internal/server/services"
)

// UsersService is the slice of the user service the transport needs.
type UsersService interface {
	Signup(ctx context.Context, email, name, secret string) (*models.User, string, error)
	Login(ctx context.Context, email, secret string) (*models.User, string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, user *models.User, token string) error
	LogoutAll(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, user *models.User, patch services.ProfilePatch) (*models.User, error)
	DeleteAccount(ctx context.Context, user *models.User) error
	SetAvatar(ctx context.Context, user *models.User, data []byte) error
	GetAvatar(ctx context.Context, userID string) ([]byte, error)
	DeleteAvatar(ctx context.Context, user *models.User) error
}

// TasksService is the slice of the task service the transport needs.
type TasksService interface {
	Create(ctx context.Context, owner *models.User, description string, completed bool) (*models.Task, error)
	List(ctx context.Context, owner *models.User, filter tasks.Filter) ([]*models.Task, error)
	Get(ctx context.Context, owner *models.User, id string) (*models.Task, error)
	Update(ctx context.Context, owner *models.User, id string, patch services.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, owner *models.User, id string) error
}

type Server struct {
	logger    logging.Logger
	users     UsersService
	tasks     TasksService
	maxUpload int64
	srv       *http.Server
}

func NewServer(cfg *config.Config, logger logging.Logger, users UsersService, tasks TasksService) *Server {
	s := &Server{
		logger:    logger.With("module", "rest"),
		users:     users,
		tasks:     tasks,
		maxUpload: cfg.AvatarMaxBytes,
	}
	s.srv = &http.Server{Addr: cfg.EndpointAddr, Handler: s.newRouter()}
	return s
}

func (s *Server) newRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(s.requestLogger(), gin.Recovery())

	r.POST("/users", s.signup)
	r.POST("/users/login", s.login)
	r.GET("/users/:id/avatar", s.getAvatar)

	auth := r.Group("", s.requireAuth())
	{
		auth.POST("/users/logout", s.logout)
		auth.POST("/users/logoutAll", s.logoutAll)
		auth.GET("/users/me", s.getProfile)
		auth.PATCH("/users/me", s.updateProfile)
		auth.DELETE("/users/me", s.deleteAccount)
		auth.POST("/users/me/avatar", s.uploadAvatar)
		auth.DELETE("/users/me/avatar", s.deleteAvatar)

		auth.POST("/tasks", s.createTask)
		auth.GET("/tasks", s.listTasks)
		auth.GET("/tasks/:id", s.getTask)
		auth.PATCH("/tasks/:id", s.updateTask)
		auth.DELETE("/tasks/:id", s.deleteTask)
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully, draining
// in-flight requests for up to five seconds.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server starting", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info(shutdownCtx, "http server shutting down")
	return s.srv.Shutdown(shutdownCtx)
}
