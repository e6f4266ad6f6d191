package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reyhanturkkal/Task-Management/internal/api"
	"github.com/reyhanturkkal/Task-Management/internal/auth"
	"github.com/reyhanturkkal/Task-Management/internal/config"
	"github.com/reyhanturkkal/Task-Management/internal/database"
	"github.com/reyhanturkkal/Task-Management/internal/logger"
	"github.com/reyhanturkkal/Task-Management/internal/monitoring"
	"github.com/reyhanturkkal/Task-Management/internal/services"
	"github.com/reyhanturkkal/Task-Management/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration; the signing secret and database path are required.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.IsProduction())

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	taskService := services.NewTaskService(db)
	eventService := services.NewEventService(db)

	// Set up auth
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token service")
	}
	resolver := auth.NewResolver(tokens, userService)

	// Set up and run the background stats updater
	statUpdater := monitoring.NewStatUpdater(taskService)
	go statUpdater.Run()

	// Set up and run the background overdue sweeper
	sweeper, err := monitoring.NewSweeper(taskService, eventService, hub, cfg.SweepSchedule)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize sweeper")
	}
	go sweeper.Run()

	// Set up router
	router := api.NewRouter(api.Deps{
		DB:            db,
		Hub:           hub,
		Tokens:        tokens,
		Resolver:      resolver,
		UserService:   userService,
		TaskService:   taskService,
		EventService:  eventService,
		CORSOrigin:    cfg.CORSOrigin,
		SecureCookies: cfg.IsProduction(),
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	statUpdater.Stop()
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
