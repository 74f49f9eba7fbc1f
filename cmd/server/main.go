package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	appmoderation "github.com/safenest/safenest/pkg/app/moderation"
	appnotification "github.com/safenest/safenest/pkg/app/notification"
	"github.com/safenest/safenest/pkg/app/monitoring"
	"github.com/safenest/safenest/pkg/app/settings"
	"github.com/safenest/safenest/pkg/config"
	handlers "github.com/safenest/safenest/pkg/handlers/http"
	"github.com/safenest/safenest/pkg/infra/cache"
	"github.com/safenest/safenest/pkg/infra/classifier"
	"github.com/safenest/safenest/pkg/infra/database"
	infraLogger "github.com/safenest/safenest/pkg/infra/logger"
	"github.com/safenest/safenest/pkg/infra/metrics"
	"github.com/safenest/safenest/pkg/infra/providers/factory"
	"github.com/safenest/safenest/pkg/infra/push"
	"github.com/safenest/safenest/pkg/infra/repository"
	"github.com/safenest/safenest/pkg/server"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger("server")

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	metrics.Initialize()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheClient, err := cache.NewClient(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize cache: %v", err)
	}

	providerClient, err := factory.NewProviderLocator().Get(cfg.Classifier.Provider)
	if err != nil {
		logger.Fatalf("Failed to initialize classifier provider: %v", err)
	}

	visionClassifier := classifier.NewVisionClassifier(classifier.Config{
		Provider:           cfg.Classifier.Provider,
		APIKey:             cfg.Classifier.APIKey,
		Model:              cfg.Classifier.Model,
		MaxTokens:          cfg.Classifier.MaxTokens,
		Timeout:            time.Duration(cfg.Classifier.TimeoutSeconds) * time.Second,
		BreakerMaxFailures: cfg.Classifier.BreakerMaxFailures,
		BreakerCooldown:    time.Duration(cfg.Classifier.BreakerCooldownSec) * time.Second,
	}, providerClient, logger)

	// repository
	parentRepository := repository.NewParentRepository(db.DB)
	activityRepository := repository.NewActivityRepository(db.DB)
	notificationRepository := repository.NewNotificationRepository(db.DB)

	// service
	engine := appmoderation.NewEngine(visionClassifier, logger)
	settingsFinder := settings.NewFinder(parentRepository, cacheClient, logger)
	settingsUpdater := settings.NewUpdater(parentRepository, cacheClient, logger)
	dispatcher := buildDispatcher(cfg, logger)
	sender := appnotification.NewSender(notificationRepository, dispatcher, logger)
	processor := monitoring.NewProcessor(engine, settingsFinder, activityRepository, sender, logger)

	handlerTransport := handlers.HandlerTransport{
		// Activities
		ReportActivityHandler: handlers.NewReportActivityHandler(logger, processor),
		ListActivitiesHandler: handlers.NewListActivitiesHandler(logger, processor),
		ActivityStatsHandler:  handlers.NewActivityStatsHandler(logger, processor),
		UpdateDurationHandler: handlers.NewUpdateDurationHandler(logger, processor),
		// Settings
		GetSettingsHandler:    handlers.NewGetSettingsHandler(logger, settingsFinder),
		UpdateSettingsHandler: handlers.NewUpdateSettingsHandler(logger, settingsFinder, settingsUpdater),
		// Notifications
		ListNotificationsHandler:    handlers.NewListNotificationsHandler(logger, notificationRepository),
		MarkNotificationReadHandler: handlers.NewMarkNotificationReadHandler(logger, notificationRepository),
	}

	srv := server.NewApiServer(server.ApiServerDI{
		HandlerTransport: handlerTransport,
		Config:           cfg,
		Logger:           logger,
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

func buildDispatcher(cfg *config.Config, logger *logrus.Logger) push.Dispatcher {
	if !cfg.Push.Enabled || cfg.Push.Endpoint == "" {
		return push.NewNoopDispatcher(logger)
	}
	return push.NewHTTPDispatcher(push.Config{
		Endpoint:  cfg.Push.Endpoint,
		ServerKey: cfg.Push.ServerKey,
	}, nil, logger)
}
