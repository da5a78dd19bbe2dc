package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transcribe-api/config"
	"transcribe-api/internal/handlers"
	"transcribe-api/internal/middleware"
	"transcribe-api/internal/services"
	"transcribe-api/pkg/recognition"
	"transcribe-api/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file
	envPaths := []string{
		"../../.env", // From cmd/worker/ to the repo root
		".env",       // Current directory
	}
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info().Str("path", path).Msg("loaded .env")
			break
		}
	}

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := log.With().Str("service", "transcribe-worker").Logger()

	ctx := context.Background()

	store, err := storage.NewGCSStore(ctx, cfg.GCP.AudioBucket)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create storage client")
	}
	defer store.Close()

	recognizer, err := recognition.NewGoogleRecognizer(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create speech client")
	}
	defer recognizer.Close()

	transcriber := services.NewTranscriberService(store, recognizer, cfg.GCP.TranscriptFolder, logger)
	pushHandler := handlers.NewPushHandler(transcriber, logger)

	router := setupRouter(cfg, pushHandler)

	// The write timeout must cover a full recognition wait, which can take
	// up to 600 seconds.
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: 660 * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("worker starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start worker")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down worker")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("worker forced to shutdown")
	}

	logger.Info().Msg("worker exited")
}

func setupRouter(cfg *config.Config, pushHandler *handlers.PushHandler) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "transcribe-worker",
		})
	})

	router.POST("/pubsub/push", pushHandler.Receive)

	return router
}
