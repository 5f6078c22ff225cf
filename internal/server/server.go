package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"teamtasks/internal/models"
	"teamtasks/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the application services the handlers call into.
type Services struct {
	Tasks     *service.TaskService
	Dashboard *service.DashboardService
	Directory *service.DirectoryService
	Health    Pinger
}

// Options tunes the HTTP layer.
type Options struct {
	StaticDir   string
	CORSOrigins []string
}

// Server provides HTTP handlers for the team tasks dashboard backend.
type Server struct {
	engine    *gin.Engine
	tasks     *service.TaskService
	dashboard *service.DashboardService
	directory *service.DirectoryService
	health    Pinger
	logger    *slog.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(svc Services, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	registerValidators()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestID())
	router.Use(recovery(logger))
	router.Use(requestLogger(logger, "/api"))
	if mw := corsMiddleware(opts.CORSOrigins); mw != nil {
		router.Use(mw)
	}

	srv := &Server{
		engine:    router,
		tasks:     svc.Tasks,
		dashboard: svc.Dashboard,
		directory: svc.Directory,
		health:    svc.Health,
		logger:    logger,
		staticDir: opts.StaticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/developer-workload", s.handleDeveloperWorkload)
			dashboard.GET("/project-health", s.handleProjectHealth)
			dashboard.GET("/developer-delay-risk", s.handleDeveloperDelayRisk)
		}

		developers := api.Group("/developers")
		{
			developers.GET("", s.handleListDevelopers)
			developers.GET(":id", s.handleGetDeveloper)
			developers.GET(":id/tasks", s.handleListDeveloperTasks)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", s.handleListProjects)
			projects.GET(":id", s.handleGetProject)
			projects.GET(":id/tasks", s.handleListTasks)
		}

		tasks := api.Group("/tasks")
		{
			tasks.POST("", s.handleCreateTask)
			tasks.GET("due-soon", s.handleTasksDueSoon)
			tasks.GET(":id", s.handleGetTask)
			tasks.PUT(":id/status", s.handleUpdateTaskStatus)
		}
	}

	s.mountStatic()
}

// handleHealth reports readiness, including database reachability.
func (s *Server) handleHealth(c *gin.Context) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			s.logger.Error("health check failed", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, envelope{Success: false, Message: "database unavailable"})
			return
		}
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "ok"}, "")
}

// parseID converts a path parameter to a positive int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "invalid identifier", Errors: []string{name + ": must be a positive integer"}})
		return 0, false
	}
	return id, true
}

// pageFromQuery reads page and pageSize, falling back to the defaults for
// missing or malformed values and clamping the rest.
func pageFromQuery(c *gin.Context) models.PageRequest {
	// Out of range numbers come back saturated and are clamped below.
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		page = models.DefaultPage
	}
	size, err := strconv.Atoi(c.Query("pageSize"))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		size = models.DefaultPageSize
	}
	return models.NewPageRequest(page, size)
}

// corsMiddleware returns nil when no origin is configured; "*" allows any origin.
func corsMiddleware(origins []string) gin.HandlerFunc {
	var cleaned []string
	allowAll := false
	for _, o := range origins {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			allowAll = true
		default:
			cleaned = append(cleaned, o)
		}
	}
	if !allowAll && len(cleaned) == 0 {
		return nil
	}

	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = cleaned
	}
	return cors.New(cfg)
}
