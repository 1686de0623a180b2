package routes

import (
	"fmt"
	"sort"
	"strings"

	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/delivery/http/operations"
	"skill-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

const (
	APIPrefix = "/api/v1"
	WSPath    = "/ws/users/:user_id"
)

// RouteProvider maps operation names to the handlers serving them.
type RouteProvider interface {
	Routes() map[string]fiber.Handler
}

type Registry struct {
	ops       *operations.Registry
	auth      *middleware.AuthMiddleware
	ws        *ws.Handler
	providers []RouteProvider
}

func NewRegistry(ops *operations.Registry, auth *middleware.AuthMiddleware, wsHandler *ws.Handler, providers ...RouteProvider) *Registry {
	return &Registry{ops: ops, auth: auth, ws: wsHandler, providers: providers}
}

// Register mounts every operation of the table. An operation without a
// handler, or a handler without an operation, is an error.
func (r *Registry) Register(app *fiber.App) error {
	if app == nil {
		return fmt.Errorf("routes: nil app")
	}

	handlers := make(map[string]fiber.Handler)
	for _, p := range r.providers {
		for name, h := range p.Routes() {
			if _, dup := handlers[name]; dup {
				return fmt.Errorf("routes: operation %s has two handlers", name)
			}
			handlers[name] = h
		}
	}

	api := app.Group(APIPrefix)
	for _, op := range r.ops.All() {
		h, ok := handlers[op.Name]
		if !ok {
			return fmt.Errorf("routes: operation %s has no handler", op.Name)
		}
		delete(handlers, op.Name)

		var router fiber.Router = api
		if op.Root {
			router = app
		}

		chain := make([]fiber.Handler, 0, 4)
		if op.Auth {
			chain = append(chain, r.auth.Middleware(), middleware.RequireSelf("user_id"))
		}
		chain = append(chain, middleware.ValidateBody(op), h)
		// fiber v3.0.0-beta.3 runs the variadic middleware before handler.
		router.Add([]string{op.Method}, op.Path, chain[len(chain)-1], chain[:len(chain)-1]...)
	}
	if len(handlers) > 0 {
		names := make([]string, 0, len(handlers))
		for name := range handlers {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("routes: handlers for unknown operations %s", strings.Join(names, ", "))
	}

	if r.ws != nil {
		app.Get(WSPath, r.ws.HandleUserWS, r.auth.Middleware(), middleware.RequireSelf("user_id"))
	}
	return nil
}
