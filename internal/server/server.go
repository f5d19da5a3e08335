package server

import (
	"log"

	"github.com/mbernahr/simple-eri-test-server/internal/bootstrap"
	"github.com/mbernahr/simple-eri-test-server/internal/config"
	"github.com/mbernahr/simple-eri-test-server/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.App.MaxRequestBytes,
		ErrorHandler: serverutils.NewErrorHandler(container.Logger),
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, token, user, password",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
		MaxAge:        600,
	}))

	app.Use(compress.New())

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.SecurityHeadersMiddleware())
	app.Use(serverutils.SecurityMiddleware(
		container.AuthService,
		container.TokenService,
		cfg.App.MaxRequestBytes,
	))

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("ERI server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"message": "ERI API Server is running"})
	})
	// Health doubles as an index-reachability probe: it reports the current
	// chunk count and degrades when the backing store cannot be queried.
	app.Get("/health", func(ctx *fiber.Ctx) error {
		chunkCount, err := c.ChunkRepository.Count(ctx.Context())
		if err != nil {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
			})
		}
		return ctx.JSON(fiber.Map{
			"status": "healthy",
			"chunks": chunkCount,
		})
	})

	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.RetrievalController.RegisterRoutes(api)
	c.InfoController.RegisterRoutes(api)
	c.AdminController.RegisterRoutes(api)
}
