package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkmarket/commission-market/internal/api/handler"
	"github.com/inkmarket/commission-market/internal/api/middleware"
	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
	"github.com/inkmarket/commission-market/internal/core/service"
	mongodb "github.com/inkmarket/commission-market/internal/infrastructure/db/mongo"
	redisdb "github.com/inkmarket/commission-market/internal/infrastructure/db/redis"
	"github.com/inkmarket/commission-market/internal/infrastructure/queue"
	"github.com/inkmarket/commission-market/internal/infrastructure/ratelimit"
	"github.com/inkmarket/commission-market/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the card resync dispatcher (started by the caller).
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	commissionRepo := mongodb.NewCommissionRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	cardRepo := mongodb.NewCardRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)

	// --- Rate limiter: process-local by default, Redis when instances share a quota ---
	var counter ports.RateCounter = ratelimit.NewMemoryCounter()
	if cfg.RateLimit.Shared {
		counter = redisdb.NewRateCounter(rdb)
	}
	limiter := service.NewFixedWindowLimiter(counter, cfg.RateLimit.Limit, cfg.RateLimit.Window, log)

	// --- Services ---
	cardService := service.NewCardService(userRepo, cardRepo, log)
	commissionService := service.NewCommissionService(userRepo, commissionRepo, log)
	reviewService := service.NewReviewService(userRepo, commissionRepo, reviewRepo, cardService, log)
	messageService := service.NewMessageService(userRepo, messageRepo, limiter, log)
	userService := service.NewUserService(userRepo, cardService, log)
	authService := service.NewAuthService(userRepo, cardService, cfg.JWTSecret, 24*time.Hour, log)

	dispatcher := queue.NewDispatcher(cfg.CardSync.Workers, cardService, userRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	commissionHandler := handler.NewCommissionHandler(commissionService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	cardHandler := handler.NewCardHandler(cardService, dispatcher)
	messageHandler := handler.NewMessageHandler(messageService)
	userHandler := handler.NewUserHandler(userService)

	auth := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Public browse ---
	e.GET("/v1/cards", cardHandler.List)
	e.GET("/v1/cards/:id", cardHandler.Get)
	e.GET("/v1/artists/:id/reviews", reviewHandler.ListByArtist)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", auth)
	v1.POST("/commissions", commissionHandler.Create)
	v1.GET("/commissions", commissionHandler.List)
	v1.GET("/commissions/:id", commissionHandler.Get)
	v1.PATCH("/commissions/:id/status", commissionHandler.UpdateStatus)
	v1.POST("/commissions/:id/progress", commissionHandler.AddProgress,
		middleware.RBAC(domain.RoleArtist, domain.RoleAdmin))
	v1.POST("/reviews", reviewHandler.Create)
	v1.GET("/reviews/:id", reviewHandler.Get)
	v1.POST("/messages", messageHandler.Send)
	v1.GET("/messages/:user_id", messageHandler.Conversation)
	v1.GET("/users/me", userHandler.Me)
	v1.PATCH("/artists/me/profile", userHandler.UpdateProfile,
		middleware.RBAC(domain.RoleArtist))

	// --- Admin routes ---
	admin := e.Group("/v1/admin", auth, middleware.RBAC(domain.RoleAdmin))
	admin.POST("/cards/resync", cardHandler.Resync)
	admin.PATCH("/users/:id/role", userHandler.ChangeRole)

	// --- Observability ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e, dispatcher
}
