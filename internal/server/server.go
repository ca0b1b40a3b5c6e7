package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smartcook/smartcook-backend/config"
	"github.com/smartcook/smartcook-backend/internal/api"
	"github.com/smartcook/smartcook-backend/internal/middleware"
	"github.com/smartcook/smartcook-backend/internal/service"
)

// Server wraps the HTTP server and its routing.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	http   *http.Server
}

// New builds the router, wires every handler and returns a server ready to
// run.
func New(cfg *config.Config, db *gorm.DB, llm service.LLMClient, logger *zap.Logger) *Server {
	recipeSvc := service.NewRecipeService(db, llm, logger)
	substitutionSvc := service.NewSubstitutionService(db, logger)
	chainSvc := service.NewChainService(recipeSvc, substitutionSvc, llm, logger)
	ingredientSvc := service.NewIngredientService(db, logger)
	favoriteSvc := service.NewFavoriteService(db, logger)
	shoppingSvc := service.NewShoppingListService(db, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "smartcook-backend",
		})
	})

	apiGroup := router.Group("/api")
	apiGroup.Use(middleware.GlobalRateLimit(cfg.RateLimit.GlobalPerHour, cfg.RateLimit.GlobalPerDay))

	// Each model-backed endpoint gets its own counter.
	generateLimiter := middleware.NewRateLimiter(
		cfg.RateLimit.GenerateRequests, cfg.RateLimit.GenerateWindow).Middleware()
	chainLimiter := middleware.NewRateLimiter(
		cfg.RateLimit.GenerateRequests, cfg.RateLimit.GenerateWindow).Middleware()

	api.NewRecipeHandler(recipeSvc, logger).RegisterRoutes(apiGroup, generateLimiter)
	api.NewChainHandler(chainSvc, logger).RegisterRoutes(apiGroup, chainLimiter)
	api.NewIngredientHandler(ingredientSvc, logger).RegisterRoutes(apiGroup)
	api.NewFavoriteHandler(favoriteSvc, logger).RegisterRoutes(apiGroup)
	api.NewShoppingListHandler(shoppingSvc, logger).RegisterRoutes(apiGroup)
	api.NewSubstitutionHandler(substitutionSvc, recipeSvc, logger).RegisterRoutes(apiGroup)

	return &Server{
		cfg:    cfg,
		logger: logger,
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
}

// Run starts serving and blocks until the listener stops.
func (s *Server) Run() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.http.Shutdown(ctx)
}
