// Package server wires configuration, providers and the HTTP stack.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/FileBridge/internal/api/http"
	"github.com/GriffinCanCode/FileBridge/internal/api/middleware"
	"github.com/GriffinCanCode/FileBridge/internal/domain/service"
	"github.com/GriffinCanCode/FileBridge/internal/infrastructure/config"
	"github.com/GriffinCanCode/FileBridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileBridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/FileBridge/internal/providers/filesystem"
	"github.com/GriffinCanCode/FileBridge/internal/providers/media"
	"github.com/GriffinCanCode/FileBridge/internal/providers/system"
	"github.com/GriffinCanCode/FileBridge/internal/shared/paths"
)

// Server is the assembled tool server.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	registry   *service.Registry
	workspace  *paths.Workspace
	log        *logging.Logger
}

// New builds a server from configuration.
func New(cfg *config.Config, log *logging.Logger) (*Server, error) {
	if log == nil {
		log = logging.NewNop()
	}

	workspace, err := paths.New(cfg.Workspace.Root)
	if err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}
	if err := workspace.Ensure(); err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}

	metrics := monitoring.NewMetrics()

	fsProvider := filesystem.NewProvider(workspace, filesystem.BackupPolicy{
		OnOverwrite: cfg.Backup.OverwriteDefault,
		OnDelete:    cfg.Backup.DeleteDefault,
	}, log)
	fsProvider.SetObserver(metrics.RecordMutation)

	registry := service.NewRegistry()
	providers := []service.Provider{
		fsProvider,
		system.NewProvider(workspace),
		media.NewProvider(workspace, log),
	}
	for _, p := range providers {
		if err := registry.Register(p); err != nil {
			return nil, fmt.Errorf("register provider: %w", err)
		}
	}

	handlers := apihttp.NewHandlers(registry, metrics, log)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(monitoring.Middleware(metrics))
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	engine.GET("/", handlers.Root)
	engine.GET("/health", handlers.Health)
	engine.GET("/services", handlers.ListServices)
	engine.POST("/services/discover", handlers.DiscoverServices)
	engine.POST("/services/execute", handlers.ExecuteService)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	return &Server{
		engine:     engine,
		httpServer: &http.Server{Addr: addr, Handler: engine},
		registry:   registry,
		workspace:  workspace,
		log:        log,
	}, nil
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Registry exposes the service registry.
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.log.Info("server listening",
		zap.String("addr", s.httpServer.Addr),
		zap.String("workspace", s.workspace.Root))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("server shutting down")
	return s.httpServer.Shutdown(ctx)
}
