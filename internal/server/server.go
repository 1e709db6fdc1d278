package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/rsempe/tracemyride/internal/config"
	"github.com/rsempe/tracemyride/internal/gateway"
	"github.com/rsempe/tracemyride/internal/session"
	"github.com/rsempe/tracemyride/internal/stream"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	Redis    *redis.Client
	Stream   *stream.Hub
	Sessions *session.Manager
}

// NewServer wires the session controller against the given gateway. Pass
// gw=nil to build one from the config's routing backend URL.
func NewServer(cfg config.Config, gw gateway.Service, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	if gw == nil {
		timeout := time.Duration(cfg.RoutingTimeoutSec) * time.Second
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		gw = gateway.NewClient(cfg.RoutingAPIURL, timeout)
	}

	hub := stream.NewHub(redisClient)
	s := &Server{
		App:      app,
		Cfg:      cfg,
		Redis:    redisClient,
		Stream:   hub,
		Sessions: session.NewManager(gw, hub, redisClient, cfg.ClickToleranceM),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	session.RegisterRoutes(s.App.Group("/sessions"), s.Sessions)
	session.RegisterSavedRouteRoutes(s.App.Group("/routes"), s.Sessions)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
