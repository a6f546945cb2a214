package router

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/wavely-app/backend/internal/handlers"
	"github.com/wavely-app/backend/internal/middleware"
	"github.com/wavely-app/backend/internal/models"
	"github.com/wavely-app/backend/internal/pagination"
	"github.com/wavely-app/backend/internal/repositories"
	"github.com/wavely-app/backend/internal/services"
	"github.com/wavely-app/backend/pkg/config"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.RequestID())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes migrates the schema, wires the store and services, and
// registers all application routes
func SetupRoutes(e *echo.Echo, db *gorm.DB, firebaseAuthClient *auth.Client, cfg *config.Config, logger *slog.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Video{},
	)
	if err != nil {
		return err
	}
	logger.Info("schema migrations completed")

	// Health check, always accessible
	e.GET("/health", handlers.HealthCheck)

	store := repositories.NewPostgresStore(db)
	policy := pagination.NewPolicy(cfg.DefaultPageSize, cfg.MaxPageSize)

	postSvc := services.NewPostService(store, policy, logger)
	commentSvc := services.NewCommentService(store, policy, logger)
	likeSvc := services.NewLikeService(store, policy, logger)
	followSvc := services.NewFollowService(store, policy, logger)
	feedSvc := services.NewFeedService(store, policy, logger)
	videoSvc := services.NewVideoService(store, policy, logger)

	// Unprotected routes for authentication
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(store.Users(), firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// Protected routes, require a valid JWT
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	handlers.NewUserHandler(store.Users(), policy).RegisterProfileRoutes(api)
	handlers.NewPostHandler(postSvc, policy).RegisterPostRoutes(api)
	handlers.NewCommentHandler(commentSvc, policy).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(likeSvc, policy).RegisterLikeRoutes(api)
	handlers.NewFollowHandler(followSvc, policy).RegisterFollowRoutes(api)
	handlers.NewFeedHandler(feedSvc).RegisterFeedRoutes(api)
	handlers.NewVideoHandler(videoSvc, policy).RegisterVideoRoutes(api)

	logger.Info("all routes configured")
	return nil
}
