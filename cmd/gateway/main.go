package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/modfence/modfence/pkg/config"
	handlers "github.com/modfence/modfence/pkg/handlers/http"
	"github.com/modfence/modfence/pkg/infra/azure"
	infraCache "github.com/modfence/modfence/pkg/infra/cache"
	"github.com/modfence/modfence/pkg/infra/document"
	"github.com/modfence/modfence/pkg/infra/fetcher"
	"github.com/modfence/modfence/pkg/infra/httpx"
	infraLogger "github.com/modfence/modfence/pkg/infra/logger"
	"github.com/modfence/modfence/pkg/middleware"
	"github.com/modfence/modfence/pkg/moderation"
	"github.com/modfence/modfence/pkg/server"
)

const backendTimeout = 30 * time.Second

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	policy, err := moderation.PolicyFromSettings(cfg.Moderation.Settings)
	if err != nil {
		logger.Fatalf("Invalid moderation settings: %v", err)
	}

	backendClient := httpx.NewFastHTTPClient(backendTimeout)
	downloadClient := httpx.NewFastHTTPClient(cfg.Moderation.DownloadTimeout())

	var analyzer moderation.Analyzer = azure.NewClient(cfg.Azure.Endpoint, cfg.Azure.APIKey, backendClient, logger)

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		resultCache := infraCache.NewRedisResultCache(redisClient, cfg.Redis.TTL(), logger)
		analyzer = infraCache.NewCachedAnalyzer(analyzer, resultCache)
		logger.Info("classification result cache enabled")
	}

	resourceFetcher := fetcher.NewHTTPFetcher(downloadClient, cfg.Moderation.DownloadTimeout(), logger)
	documents := document.NewRegistry(logger)
	extractor := moderation.NewExtractor(resourceFetcher, documents, policy, logger)
	pipeline := moderation.NewPipeline(extractor, analyzer, policy, logger)

	handlerTransport := handlers.HandlerTransport{
		WebhookHandler: handlers.NewWebhookHandler(logger, pipeline),
	}
	middlewareTransport := middleware.Transport{
		PanicRecover: middleware.NewPanicRecoverMiddleware(logger),
		Metrics:      middleware.NewMetricsMiddleware(),
	}

	srv := server.NewWebhookServer(server.WebhookServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}
