// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"marketplace_backend/internal/auth"
	"marketplace_backend/internal/config"
	"marketplace_backend/internal/guard"
	"marketplace_backend/internal/middleware"
	"marketplace_backend/internal/product"
	"marketplace_backend/internal/seller"
	"marketplace_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	authHandler    *auth.Handler
	userHandler    *user.Handler
	sellerHandler  *seller.Handler
	productHandler *product.Handler

	// Middleware instances
	authMW         gin.HandlerFunc
	optionalAuthMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	sellerHandler *seller.Handler,
	productHandler *product.Handler,
	accessGuard *guard.Guard,
	db *gorm.DB,
) (*Server, error) {
	if err := db.AutoMigrate(&user.User{}, &seller.Seller{}, &product.Product{}); err != nil {
		return nil, fmt.Errorf("failed to run schema migration: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware. Credentials must be allowed because the session rides
	// on a cookie, which also rules out a wildcard origin.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Create middleware instances
	authMW := middleware.AuthMiddleware(accessGuard, cfg, logger.Named("AuthMiddleware"))
	optionalAuthMW := middleware.OptionalAuthMiddleware(accessGuard, cfg)

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Marketplace API is healthy!"})
	})

	root := router.Group("/")

	authHandler.RegisterRoutes(root)
	userHandler.RegisterRoutes(root, authMW)
	sellerHandler.RegisterRoutes(root, authMW)
	productHandler.RegisterRoutes(root, authMW, optionalAuthMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:     httpServer,
		router:         router,
		cfg:            cfg,
		logger:         logger,
		authHandler:    authHandler,
		userHandler:    userHandler,
		sellerHandler:  sellerHandler,
		productHandler: productHandler,
		authMW:         authMW,
		optionalAuthMW: optionalAuthMW,
	}, nil
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	return s.httpServer.Shutdown(ctx)
}
