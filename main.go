package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cookistry/cookistry-be/internal/api"
	"github.com/cookistry/cookistry-be/internal/config"
	"github.com/cookistry/cookistry-be/internal/database"
	"github.com/cookistry/cookistry-be/internal/logger"
	"github.com/cookistry/cookistry-be/internal/media"
	"github.com/cookistry/cookistry-be/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up media storage for uploaded recipe images
	imageStore, err := media.NewStorage(cfg.UploadPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize media storage")
	}

	// Set up services
	recipeService := services.NewRecipeService(db, imageStore)
	userService := services.NewUserService(db)

	// Set up router
	router := api.NewRouter(recipeService, userService, imageStore.Dir(), cfg.CORSOrigins)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
