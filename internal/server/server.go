package server

import (
	"backend-runhub/internal/audit"
	"backend-runhub/internal/auth"
	"backend-runhub/internal/config"
	"backend-runhub/internal/group"
	"backend-runhub/internal/journal"
	"backend-runhub/internal/live"
	"backend-runhub/internal/progress"
	"backend-runhub/internal/run"
	"backend-runhub/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Hub   *live.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Hub:   live.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	aggregator := progress.NewAggregator(s.DB, s.Redis, s.Hub)
	auditSvc := audit.NewService(s.DB)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	// "/users/progress" must be registered before the "/users" group so
	// it is not swallowed by the "/users/:id" parameter routes.
	progress.RegisterRoutes(s.App.Group("/users/progress"), aggregator, jwtMiddleware)
	user.RegisterRoutes(s.App.Group("/users"), user.NewService(s.DB), auditSvc, jwtMiddleware)
	run.RegisterRoutes(s.App.Group("/runs"), run.NewService(s.DB, aggregator), jwtMiddleware)
	group.RegisterRoutes(s.App.Group("/groups"), group.NewService(s.DB), jwtMiddleware)
	journal.RegisterRoutes(s.App.Group("/journal"), journal.NewService(s.DB), jwtMiddleware)
	audit.RegisterRoutes(s.App.Group("/audit"), auditSvc, jwtMiddleware)
	live.RegisterRoutes(s.App.Group("/live"), s.Hub)
}
