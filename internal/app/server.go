// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"donation_backend/internal/auth"
	"donation_backend/internal/config"
	"donation_backend/internal/donation"
	"donation_backend/internal/firebase"
	"donation_backend/internal/jobs"
	"donation_backend/internal/middleware"
	"donation_backend/internal/profile"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	authHandler     *auth.Handler
	profileHandler  *profile.Handler
	donationHandler *donation.Handler
	webhookHandler  *donation.WebhookHandler

	// Jobs
	reconcileJob *jobs.ReconcileJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *auth.Handler,
	profileHandler *profile.Handler,
	donationHandler *donation.Handler,
	webhookHandler *donation.WebhookHandler,
	reconcileJob *jobs.ReconcileJob,
	firebaseService *firebase.Service,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Create middleware instances
	authMW := middleware.AuthMiddleware(firebaseService, logger.Named("AuthMiddleware"))
	adminMW := middleware.AdminOnlyMiddleware(cfg.AdminEmail)

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Donation API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1, authMW)
	profileHandler.RegisterRoutes(v1, authMW)
	donationHandler.RegisterRoutes(v1, authMW, adminMW)

	// Gateway webhooks are verified by signature, not bearer token.
	webhookHandler.RegisterRoutes(router)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:      httpServer,
		router:          router,
		cfg:             cfg,
		logger:          logger,
		authHandler:     authHandler,
		profileHandler:  profileHandler,
		donationHandler: donationHandler,
		webhookHandler:  webhookHandler,
		reconcileJob:    reconcileJob,
	}, nil
}

func (s *Server) Start() error {
	if s.reconcileJob != nil {
		if err := s.reconcileJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start reconcile job", zap.Error(err))
		}
	} else {
		s.logger.Info("Reconcile job is not configured, skipping start.")
	}

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
	if s.reconcileJob != nil {
		s.reconcileJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
