package main

import (
	"context"
	"log/slog"
	"os"

	firebaseAuth "firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/wavely-app/backend/internal/router"
	"github.com/wavely-app/backend/pkg/config"
	"github.com/wavely-app/backend/pkg/firebase"
	"github.com/wavely-app/backend/validators"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := config.InitDB(cfg.PostgresConnStr)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.CloseDB()

	// Firebase is optional; without credentials only local JWT auth works
	var authClient *firebaseAuth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			logger.Error("failed to initialize firebase", "error", err)
			os.Exit(1)
		}
		authClient = firebaseApp.AuthClient
	} else {
		logger.Info("firebase credentials not configured, firebase login disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	if err := router.SetupRoutes(e, db.Postgres, authClient, cfg, logger); err != nil {
		logger.Error("failed to set up routes", "error", err)
		os.Exit(1)
	}

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
