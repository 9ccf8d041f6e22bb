package routes

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/delivery/http/handler"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/ws"
)

// Deps carries everything v1 wiring needs. Cache and Hub may be nil.
type Deps struct {
	Cfg    config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func Register(app *fiber.App, deps Deps) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(deps.DB).RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Deps{
		Cfg:    deps.Cfg,
		DB:     deps.DB,
		Cache:  deps.Cache,
		Hub:    deps.Hub,
		Logger: deps.Logger,
	})
}
