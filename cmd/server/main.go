package main

import (
	"log"

	"github.com/formforge/formbuilder-service/internal/cache"
	"github.com/formforge/formbuilder-service/internal/config"
	"github.com/formforge/formbuilder-service/internal/events"
	"github.com/formforge/formbuilder-service/internal/handlers"
	"github.com/formforge/formbuilder-service/internal/repositories/postgres"
	"github.com/formforge/formbuilder-service/internal/services"
	"github.com/formforge/formbuilder-service/internal/utils"
	"github.com/formforge/formbuilder-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return
	}
	if err := pkg.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		return
	}

	cacheService := cache.NewMemoryCache()
	if cfg.RedisURL != "" {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			return
		}
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, logger)
	}

	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: cfg.KafkaBrokers,
			TopicName:    cfg.EventsTopic,
			Logger:       utils.ToSlogLogger(logger),
		})
		if err != nil {
			logger.Error("Failed to create event publisher", "error", err)
			return
		}
		publisher = kafkaPublisher
	} else {
		logger.Warn("No Kafka brokers configured, events stay in-process")
		publisher = events.NewMockEventPublisher(utils.ToSlogLogger(logger))
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	validator := utils.NewValidator()
	serviceManager := services.NewServiceManager(repo, logger, validator, cacheService, publisher)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, logger)
	handlerManager.SetupRoutes(router)

	logger.Info("Starting formbuilder service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("Server stopped", "error", err)
	}
}
