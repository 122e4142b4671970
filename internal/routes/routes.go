package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/sirupsen/logrus"

	"github.com/mettaway/ventara/internal/config"
	"github.com/mettaway/ventara/internal/logging"
	"github.com/mettaway/ventara/internal/metrics"
	"github.com/mettaway/ventara/internal/middleware"
	"github.com/mettaway/ventara/internal/registration"
	"github.com/mettaway/ventara/internal/telemetry"
)

const serviceName = "ventara"

// Set at build time with -ldflags "-X".
var (
	commit    = "unknown"
	buildTime = "unknown"
)

// Dependencies are the domain services behind the API handlers.
type Dependencies struct {
	Oracle    Categorizer
	Submitter Submitter
	Counter   Counter
	Notifier  registration.Notifier
	Reporter  telemetry.Reporter
}

// Setup configures all API routes
func Setup(app *fiber.App, cfg *config.Config, logger *logrus.Logger, middlewareManager *middleware.Manager, deps Dependencies) {
	reporter := deps.Reporter
	if reporter == nil {
		reporter = telemetry.Nop{}
	}

	authHandler := NewAuthHandler(middlewareManager.Gate, middlewareManager.Session, logger)
	oracleHandler := NewOracleHandler(deps.Oracle, reporter, logger)
	registrationHandler := NewRegistrationHandler(deps.Submitter, deps.Counter, middlewareManager.Session, reporter,
		cfg.Storage.Backend == config.StorageBackendNotion, logger)
	emailHandler := NewEmailHandler(deps.Notifier, reporter, logger)

	// Health check endpoints
	app.Get("/healthz", healthCheck)
	app.Get("/readyz", readinessCheck(middlewareManager))
	app.Get("/version", versionHandler)

	app.Get(cfg.Observability.MetricsPath, metrics.PrometheusHandler())

	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Use(metrics.HTTPMetricsMiddleware())

	api.Post("/validate-password", authHandler.ValidatePassword)
	api.Get("/check-auth", authHandler.CheckAuth)
	api.Get("/registration-count", registrationHandler.Count)
	requireSession := func(c *fiber.Ctx) error { return c.Next() }
	if cfg.Session.Enforce {
		requireSession = middlewareManager.Session.RequireSession()
	}
	api.Post("/categorize-bird", requireSession, oracleHandler.Categorize)
	api.Post("/submit-registration", requireSession, registrationHandler.Submit)
	api.Post("/send-confirmation-email", requireSession, emailHandler.SendConfirmation)

	app.Use(notFoundHandler)
}

// healthCheck returns the health status of the service
// @Summary Health check
// @Description Check if the service is healthy
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{} "Healthy"
// @Router /healthz [get]
func healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   serviceName,
	})
}

// readinessCheck checks if the service is ready to accept traffic
// @Summary Readiness check
// @Description Check if the service is ready to accept traffic
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{} "Ready"
// @Failure 503 {object} map[string]interface{} "Not ready"
// @Router /readyz [get]
func readinessCheck(middlewareManager *middleware.Manager) fiber.Handler {
	check := middlewareManager.ReadinessCheck()
	return func(c *fiber.Ctx) error {
		if err := check(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":    "not ready",
				"reason":    "redis unavailable",
				"error":     err.Error(),
				"timestamp": time.Now().UTC(),
			})
		}

		return c.JSON(fiber.Map{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	}
}

// versionHandler returns version information
// @Summary Version information
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{} "Version info"
// @Router /version [get]
func versionHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": serviceName,
		"version": logging.Version(),
		"commit":  commit,
		"built":   buildTime,
	})
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"error":   "The requested resource was not found",
		"code":    "NOT_FOUND",
		"path":    c.Path(),
	})
}
