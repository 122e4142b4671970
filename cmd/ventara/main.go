package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mettaway/ventara/docs" // Swagger docs
	"github.com/mettaway/ventara/internal/config"
	"github.com/mettaway/ventara/internal/logging"
	"github.com/mettaway/ventara/internal/mailer"
	"github.com/mettaway/ventara/internal/metrics"
	"github.com/mettaway/ventara/internal/middleware"
	"github.com/mettaway/ventara/internal/oracle"
	"github.com/mettaway/ventara/internal/registration"
	"github.com/mettaway/ventara/internal/routes"
	"github.com/mettaway/ventara/internal/storage/dynamo"
	"github.com/mettaway/ventara/internal/storage/notion"
	"github.com/mettaway/ventara/internal/telemetry"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// @title Ventara Registration API
// @version 1.0
// @description Password gate, bird oracle and registration backend for the Mettaway voyage

// @host localhost:8000
// @BasePath /api

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)

	if err := metrics.Init(); err != nil {
		logger.WithError(err).Fatal("Failed to initialize metrics")
	}

	tracingShutdown, err := middleware.InitTracing(&cfg.Observability, cfg.Server.Environment, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to setup tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracingShutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Failed to shutdown tracing")
		}
	}()

	reporter := newReporter(cfg, logger)
	defer reporter.Flush(cfg.Sentry.FlushTimeout)

	store, err := newStore(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize registration store")
	}

	middlewareManager, err := middleware.NewManager(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize middleware manager")
	}
	defer middlewareManager.Close()

	mail := mailer.New(cfg, logger)
	if !mail.Configured() {
		logger.Warn("Mail credentials not configured; confirmation emails are disabled")
	}

	coordinator := registration.NewCoordinator(store, mail, reporter, logger,
		registration.WithEmailTimeout(cfg.Mail.SendTimeout))
	tally := registration.NewCategoryTally(store, logger)
	classifier := oracle.NewClassifier(cfg.LLM, tally, logger)

	app := fiber.New(fiber.Config{
		AppName:      "Ventara",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorHandler: routes.ErrorHandler(logger),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     "GET,POST,HEAD,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	app.Use(otelfiber.Middleware())
	app.Use(middlewareManager.ErrorLogger.Handle())

	routes.Setup(app, cfg, logger, middlewareManager, routes.Dependencies{
		Oracle:    classifier,
		Submitter: coordinator,
		Counter:   tally,
		Notifier:  mail,
		Reporter:  reporter,
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")
		if err := app.Shutdown(); err != nil {
			logger.WithError(err).Error("Server shutdown failed")
		}
	}()

	logger.WithFields(logrus.Fields{
		"port":    cfg.Server.Port,
		"storage": cfg.Storage.Backend,
		"gate":    cfg.Gate.Backend,
	}).Info("Starting Ventara server")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Error("Server stopped with error")
	}

	logger.Info("Waiting for pending confirmation emails")
	coordinator.Wait()
}

func newReporter(cfg *config.Config, logger *logrus.Logger) telemetry.Reporter {
	if cfg.Sentry.DSN == "" {
		logger.Info("Sentry DSN not set, error telemetry disabled")
		return telemetry.Nop{}
	}

	reporter, err := telemetry.NewSentry(cfg.Sentry, cfg.Server.Environment, logging.Version())
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize Sentry, error telemetry disabled")
		return telemetry.Nop{}
	}
	return reporter
}

func newStore(cfg *config.Config, logger *logrus.Logger) (registration.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendDynamoDB:
		client, err := dynamo.NewClient(context.Background(), cfg, logger)
		if err != nil {
			return nil, err
		}
		return dynamo.NewStore(client, cfg.DynamoDB, logger), nil
	default:
		return notion.NewStore(cfg.Notion, logger), nil
	}
}
