package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/vanpelt/gitmonitor/internal/config"
	"github.com/vanpelt/gitmonitor/internal/git"
	"github.com/vanpelt/gitmonitor/internal/git/executor"
	"github.com/vanpelt/gitmonitor/internal/handlers"
	"github.com/vanpelt/gitmonitor/internal/logger"
	"github.com/vanpelt/gitmonitor/internal/models"
	"github.com/vanpelt/gitmonitor/internal/recovery"
	"github.com/vanpelt/gitmonitor/internal/services"

	_ "github.com/vanpelt/gitmonitor/docs"
)

const shutdownTimeout = 5 * time.Second

// Server owns the HTTP app and every background component behind it
type Server struct {
	cfg         *config.Config
	app         *fiber.App
	repo        *git.Repository
	registry    *services.SessionRegistry
	watcher     *services.FileWatcher
	broadcaster *services.EventBroadcaster
}

// New builds the server for cfg using the git binary on PATH
func New(cfg *config.Config) (*Server, error) {
	return NewWithExecutor(cfg, executor.NewShellExecutor(cfg.GitBinary, cfg.CommandTimeout))
}

// NewWithExecutor builds the server around an explicit command executor
func NewWithExecutor(cfg *config.Config, exec executor.CommandExecutor) (*Server, error) {
	repoPath, err := cfg.AbsRepoPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repository path: %w", err)
	}

	repo := git.NewRepository(exec, repoPath)
	registry := services.NewSessionRegistry(cfg.SessionBuffer)
	watcher := services.NewFileWatcher(repoPath, cfg.EventBuffer)
	broadcaster := services.NewEventBroadcaster(watcher.Events(), registry, repo, cfg.StatusDebounce)

	s := &Server{
		cfg:         cfg,
		repo:        repo,
		registry:    registry,
		watcher:     watcher,
		broadcaster: broadcaster,
	}
	s.app = s.newApp(repoPath)
	return s, nil
}

func (s *Server) newApp(repoPath string) *fiber.App {
	fiberCfg := fiber.Config{
		AppName:               "gitmonitor",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	}
	if s.cfg.PrettyJSON {
		fiberCfg.JSONEncoder = func(v interface{}) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	app := fiber.New(fiberCfg)

	app.Use(fiberrecover.New(fiberrecover.Config{EnableStackTrace: s.cfg.Dev}))
	app.Use(handlers.SamplingLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	gitHandler := handlers.NewGitHandler(s.repo, s.broadcaster, s.cfg.StrictMutations)
	wsHandler := handlers.NewWebSocketHandler(s.registry, s.cfg.HeartbeatInterval)
	eventsHandler := handlers.NewEventsHandler(s.registry, s.broadcaster, s.cfg.HeartbeatInterval)
	indexHandler := handlers.NewIndexHandler(repoPath, s.cfg.Port, s.registry, s.broadcaster)

	app.Get("/", indexHandler.GetIndex)
	app.Get("/health", indexHandler.Health)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Get("/status", gitHandler.GetStatus)
	api.Get("/diff", gitHandler.GetDiff)
	api.Get("/diff/staged", gitHandler.GetStagedDiff)
	api.Get("/log", gitHandler.GetLog)
	api.Get("/branches", gitHandler.GetBranches)
	api.Post("/stage", gitHandler.StageFiles)
	api.Post("/unstage", gitHandler.UnstageFiles)
	api.Post("/commit", gitHandler.Commit)
	api.Get("/events", eventsHandler.HandleSSE)

	app.Get("/ws", wsHandler.HandleWebSocket)

	return app
}

// errorHandler keeps framework errors inside the response envelope
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	if code >= fiber.StatusInternalServerError {
		logger.Errorf("❌ %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(models.Failure(err.Error()))
}

// App exposes the fiber app, mostly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Registry() *services.SessionRegistry {
	return s.registry
}

// Start launches the watcher and broadcaster. A watcher failure is logged and
// the server keeps running without live push.
func (s *Server) Start(ctx context.Context) {
	if err := s.watcher.Start(ctx); err != nil {
		logger.Warnf("⚠️ File watcher disabled: %v", err)
	}
	recovery.SafeGo("event-broadcaster", func() {
		s.broadcaster.Run(ctx)
	})
	recovery.SafeGo("initial-status", func() {
		s.broadcaster.PublishStatus(s.repo.Status(ctx))
	})
}

// Serve blocks serving HTTP on ln
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Listen blocks serving HTTP on the configured address
func (s *Server) Listen() error {
	logger.Infof("🚀 Git Monitor Server listening on http://%s", s.cfg.Addr())
	return s.app.Listen(s.cfg.Addr())
}

// Shutdown stops the watcher, closes every session and drains the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.watcher.Close()
	s.registry.CloseAll()

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
