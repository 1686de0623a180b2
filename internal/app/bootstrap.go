package app

import (
	"fmt"
	"strings"

	"skill-match/internal/config"
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/delivery/http/operations"
	"skill-match/internal/delivery/http/routes"
	"skill-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of an initialized container.
func New(c *Container) (*App, error) {
	ops, err := operations.Load()
	if err != nil {
		return nil, fmt.Errorf("load operations: %w", err)
	}

	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})
	registerGlobalMiddleware(f, c.Logger)

	var db, redis handler.Pinger
	if c.DB != nil {
		db = c.DB
	}
	if c.Redis.Available() {
		redis = c.Redis
	}

	reg := routes.NewRegistry(
		ops,
		middleware.NewAuthMiddleware(c.JWT),
		ws.NewHandler(c.Hub, c.Logger.Named("ws")),
		handler.NewAuthHandler(c.Auth, c.Badges),
		handler.NewUserHandler(c.Profiles, c.Skills),
		handler.NewJobsHandler(c.Jobs),
		handler.NewActionHandler(c.Actions, c.Courses),
		handler.NewCatalogHandler(c.CatalogUC),
		handler.NewHealthHandler(c.Config.Engine.Storage, db, redis),
	)
	if err := reg.Register(f); err != nil {
		return nil, err
	}

	return &App{Fiber: f, Container: c}, nil
}

// Bootstrap wires the container and the HTTP application. The returned
// cleanup releases every connection the container opened.
func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app, err := New(c)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger.Named("http")).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
