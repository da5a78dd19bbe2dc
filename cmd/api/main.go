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
	"transcribe-api/internal/audio"
	"transcribe-api/internal/handlers"
	"transcribe-api/internal/middleware"
	"transcribe-api/internal/services"
	"transcribe-api/pkg/queue"
	"transcribe-api/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file
	envPaths := []string{
		"../../.env", // From cmd/api/ to the repo root
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
	logger := log.With().Str("service", "transcribe-api").Logger()

	ctx := context.Background()

	store, err := storage.NewGCSStore(ctx, cfg.GCP.AudioBucket)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create storage client")
	}
	defer store.Close()

	publisher, err := queue.NewPubSubPublisher(ctx, cfg.GCP.ProjectID, cfg.GCP.PubsubTopic)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create publisher")
	}
	defer publisher.Close()

	// Initialize services
	ingestion := services.NewIngestionService(store, audio.NewFFProbe(), logger)
	dispatcher := services.NewDispatcherService(publisher, cfg.GCP.AudioBucket, cfg.GCP.TranscriptFolder, logger)
	status := services.NewStatusService(store, cfg.GCP.TranscriptFolder)

	// Initialize handlers
	transcriptionHandler := handlers.NewTranscriptionHandler(ingestion, dispatcher, status)

	router := setupRouter(cfg, transcriptionHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}

func setupRouter(cfg *config.Config, transcriptionHandler *handlers.TranscriptionHandler) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.ErrorMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "transcribe-api",
		})
	})

	router.POST("/upload", transcriptionHandler.Upload)
	router.POST("/transcribe", transcriptionHandler.Transcribe)
	router.GET("/status", transcriptionHandler.Status)
	router.GET("/download", transcriptionHandler.Download)

	return router
}
