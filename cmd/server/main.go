package main

import (
	"context"
	"log"

	"github.com/campuslink/backend/internal/realtime"
	"github.com/campuslink/backend/internal/router"
	"github.com/campuslink/backend/pkg/config"
	"github.com/campuslink/backend/pkg/firebase"
	"github.com/campuslink/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Start the live-update fan-out off MongoDB change streams
	mdb := db.Mongo.Database(cfg.MongoDBName)
	hub := realtime.NewHub()
	watcher := realtime.NewWatcher(mdb, hub)
	watcher.Start(ctx)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, mdb, firebaseApp.AuthClient, hub)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
