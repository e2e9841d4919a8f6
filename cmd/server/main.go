package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/config"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/events"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/handlers"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/preview"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/repositories/postgres"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/services"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/validator"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	var slogLogger *slog.Logger
	if cfg.Environment == "production" {
		slogLogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	} else {
		slogLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	logger := utils.NewSlogLogger(slogLogger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	sessionTTL := time.Duration(cfg.PreviewSessionTTLMinutes) * time.Minute
	var store preview.SessionStore
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory preview sessions", "error", err)
		store = preview.NewMemorySessionStore(sessionTTL)
	} else {
		store = preview.NewRedisSessionStore(redisClient, sessionTTL)
	}

	var publisher events.EventPublisher
	kafkaPublisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
		KafkaBrokers: cfg.KafkaBrokers,
		TopicName:    cfg.EventTopic,
		Logger:       slogLogger,
	})
	if err != nil {
		logger.Warn("Kafka unavailable, authoring events disabled", "error", err)
	} else {
		publisher = kafkaPublisher
		defer kafkaPublisher.Close()
	}

	v := validator.New()
	cdn := utils.NewCDNResolver(cfg.CDNBaseURL)
	repo := postgres.New(db)

	sectionService := services.NewSectionService(repo, logger, v)
	questionService := services.NewQuestionService(repo, logger, v)
	assignmentService := services.NewAssignmentService(repo, logger, v, publisher)
	previewService := services.NewPreviewService(repo, store, publisher, logger, cdn)
	exportService := services.NewExportService(repo, logger)

	handlerManager := handlers.NewHandlerManager(
		handlers.NewSectionHandler(sectionService, exportService, logger),
		handlers.NewQuestionHandler(questionService, exportService, logger),
		handlers.NewAssignmentHandler(assignmentService, logger),
		handlers.NewPreviewHandler(previewService, logger),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	handlerManager.SetupRoutes(router, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
