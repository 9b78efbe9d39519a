package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"spotbook/config"
	"spotbook/jobs"
	"spotbook/routes"
	"spotbook/services"
	"spotbook/services/logger"
)

// @title        Spotbook API
// @version      1.0
// @description  Spot rental marketplace: spots, reviews and bookings.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router, c, settings, err := config.InitApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	appLogger := logger.NewDefaultLogger(settings.LogLevel)

	var tokens services.TokenStore
	var pruner jobs.TokenPruner
	var spotCache services.SpotCache
	if config.RedisClient != nil {
		tokens = services.NewRedisTokenStore(config.RedisClient)
		spotCache = services.NewRedisSpotCache(config.RedisClient, services.DefaultSpotCacheTTL)
	} else {
		memTokens := services.NewMemoryTokenStore()
		tokens, pruner = memTokens, memTokens
	}
	if err := jobs.InitCronJobs(c, pruner); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}
	var uploader services.ImageUploader
	if config.Cloudinary != nil {
		uploader = services.NewCloudinaryUploader(config.Cloudinary)
	}

	deps := routes.Dependencies{
		Auth: services.NewAuthService(services.AuthServiceOptions{
			Store:          config.Store,
			Tokens:         tokens,
			Logger:         appLogger.With("auth"),
			Secret:         settings.JWTSecret,
			TokenTTL:       settings.TokenTTL,
			GoogleClientID: settings.GoogleClientID,
		}),
		Spots: services.NewSpotService(services.SpotServiceOptions{
			Store:  config.Store,
			Cache:  spotCache,
			Logger: appLogger.With("spots"),
		}),
		Reviews: services.NewReviewService(services.ReviewServiceOptions{
			Store:  config.Store,
			Cache:  spotCache,
			Logger: appLogger.With("reviews"),
		}),
		Bookings: services.NewBookingService(services.BookingServiceOptions{
			Store:  config.Store,
			Logger: appLogger.With("bookings"),
		}),
		Uploader:     uploader,
		Logger:       appLogger.With("http"),
		SecureCookie: settings.SecureCookie,
	}
	routes.SetupRoutes(router, deps)

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Println("Server starting on port " + settings.Port + "...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	<-c.Stop().Done()
	if config.RedisClient != nil {
		_ = config.RedisClient.Close()
	}
	log.Println("Server exited")
}
