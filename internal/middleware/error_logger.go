package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const maxLoggedBody = 500

type ErrorLoggerMiddleware struct {
	logger *logrus.Logger
}

func NewErrorLoggerMiddleware(logger *logrus.Logger) *ErrorLoggerMiddleware {
	return &ErrorLoggerMiddleware{
		logger: logger,
	}
}

// Handle logs 4xx and 5xx responses. Request bodies carry passwords and
// personal data and are never logged.
func (e *ErrorLoggerMiddleware) Handle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()

		err := c.Next()

		statusCode := c.Response().StatusCode()
		if statusCode < 400 {
			return err
		}

		logFields := logrus.Fields{
			"status_code":   statusCode,
			"method":        c.Method(),
			"path":          c.Path(),
			"client_key":    ClientKey(c),
			"user_agent":    c.Get("User-Agent"),
			"request_id":    c.GetRespHeader(fiber.HeaderXRequestID),
			"duration_ms":   time.Since(startTime).Milliseconds(),
			"response_size": len(c.Response().Body()),
		}

		if len(c.Request().URI().QueryString()) > 0 {
			logFields["query"] = string(c.Request().URI().QueryString())
		}

		responseBody := string(c.Response().Body())
		if len(responseBody) > maxLoggedBody {
			responseBody = responseBody[:maxLoggedBody] + "...(truncated)"
		}
		if len(responseBody) > 0 {
			logFields["response_body"] = responseBody
		}

		logEntry := e.logger.WithFields(logFields)

		if statusCode >= 500 {
			if err != nil {
				logEntry = logEntry.WithError(err)
			}
			logEntry.Error("Server error response")
		} else {
			logEntry.Warn("Client error response")
		}

		return err
	}
}
