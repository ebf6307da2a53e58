// Package main is the entry point of the companion chat server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"maternal-companion-go/internal/config"
	"maternal-companion-go/internal/handler"
	"maternal-companion-go/internal/repository"
	"maternal-companion-go/internal/service"
	"maternal-companion-go/pkg/cache"
	"maternal-companion-go/pkg/classifier"
	"maternal-companion-go/pkg/database"
	"maternal-companion-go/pkg/events"
	"maternal-companion-go/pkg/kafka"
	"maternal-companion-go/pkg/llm"
	"maternal-companion-go/pkg/log"
)

func main() {
	// 1. secrets from .env, then the config file
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. logger
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("Logger initialized")

	// 3. caches
	emotionStore, generationStore := initStores(cfg)
	defer database.CloseRedis()

	// 4. external clients
	// 4.1 emotion classifier
	var classifierClient classifier.Client
	if cfg.Classifier.BaseURL != "" {
		classifierClient = classifier.NewClient(cfg.Classifier)
	} else {
		log.Warnf("Emotion classifier is not configured; keyword detection only")
	}

	// 4.2 Gemini; a failure only disables generation
	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	var llmClient llm.Client
	if c, err := llm.NewClient(initCtx, cfg.Gemini); err != nil {
		log.Warnw("Gemini unavailable, running in limited mode", "error", err)
	} else {
		llmClient = c
	}
	cancelInit()

	// 4.3 mood event publisher
	publisher := events.NewNopPublisher()
	if cfg.Kafka.Brokers != "" {
		publisher = kafka.NewProducer(cfg.Kafka)
		log.Infof("Publishing mood events to %s on %s", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("failed to close event publisher", err)
		}
	}()

	// 5. repository and services
	conversationRepo := repository.NewConversationRepository(cfg.Conversation.MaxTurns)
	resolver := service.NewMoodResolver(
		service.NewKeywordMatcher(service.MoodCatalog, service.KeywordPriority),
		service.NewEmotionClassifier(classifierClient, emotionStore),
	)
	generator := service.NewResponseGenerator(llmClient, generationStore, cfg.Conversation.HistoryWindow)
	chatService := service.NewChatService(resolver, generator, conversationRepo, publisher)
	conversationService := service.NewConversationService(conversationRepo)

	if chatService.LimitedMode() {
		log.Warnf(handler.LimitedModeNotice)
	}

	// 6. routes
	gin.SetMode(cfg.Server.Mode)
	r := handler.NewRouter(
		handler.NewChatHandler(chatService, conversationService),
		handler.NewConversationHandler(conversationService),
		handler.NewStatusHandler(chatService, handler.StatusInfo{
			Model:         cfg.Gemini.Model,
			Classifier:    cfg.Classifier.Model,
			CacheBackend:  cfg.Cache.Backend,
			EventsEnabled: cfg.Kafka.Brokers != "",
		}),
	)

	// 7. start the HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %s", err)
		}
	}()

	// 8. wait for SIGINT/SIGTERM and shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 9. drain in-flight requests; deferred closers then release Kafka and Redis
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("HTTP server shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}

// initStores builds the emotion and generation caches on the configured backend.
func initStores(cfg config.Config) (emotion, generation cache.Store) {
	switch cfg.Cache.Backend {
	case "redis":
		database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
		emotion = mustStore(cache.NewRedisStore(database.RDB, cfg.Cache.KeyPrefix, "emotion", cfg.Cache.Size))
		generation = mustStore(cache.NewRedisStore(database.RDB, cfg.Cache.KeyPrefix, "generation", cfg.Cache.Size))
	case "memory", "":
		emotion = mustStore(cache.NewMemoryStore(cfg.Cache.Size))
		generation = mustStore(cache.NewMemoryStore(cfg.Cache.Size))
	default:
		log.Fatalf("unknown cache backend %q", cfg.Cache.Backend)
	}
	log.Infof("Caches ready, backend: %s, size: %d", cfg.Cache.Backend, cfg.Cache.Size)
	return emotion, generation
}

func mustStore(store cache.Store, err error) cache.Store {
	if err != nil {
		log.Fatal("failed to create cache", err)
	}
	return store
}
