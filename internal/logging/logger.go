package logging

import (
	"io"
	"os"

	"github.com/mettaway/ventara/internal/config"

	"github.com/sirupsen/logrus"
)

const serviceName = "ventara"

// New creates a new structured logger
func New(cfg *config.Config) *logrus.Logger {
	return newLogger(cfg.Log, cfg.Server.Environment, os.Stdout)
}

func newLogger(logCfg config.LogConfig, environment string, out io.Writer) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(logCfg.Level)
	if err != nil {
		logger.Warn("Invalid log level, defaulting to info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if logCfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "ts",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "msg",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z",
		})
	}

	logger.SetOutput(out)

	// Every entry carries the service identity.
	logger.AddHook(&defaultFieldsHook{fields: logrus.Fields{
		"service":     serviceName,
		"version":     Version(),
		"environment": environment,
	}})

	return logger
}

// Version returns the application version
func Version() string {
	if version := os.Getenv("APP_VERSION"); version != "" {
		return version
	}
	return "dev"
}

// WithRequestID adds the request ID to logger context
func WithRequestID(logger *logrus.Logger, requestID string) *logrus.Entry {
	return logger.WithField("request_id", requestID)
}

// WithClientKey adds the rate-limit bucket key to logger context
func WithClientKey(logger *logrus.Logger, clientKey string) *logrus.Entry {
	return logger.WithField("client_key", clientKey)
}

// WithSubmission adds registration identifiers to logger context
func WithSubmission(logger *logrus.Logger, submissionID, email string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"submission_id": submissionID,
		"email":         email,
	})
}

type defaultFieldsHook struct {
	fields logrus.Fields
}

func (h *defaultFieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *defaultFieldsHook) Fire(entry *logrus.Entry) error {
	for k, v := range h.fields {
		if _, exists := entry.Data[k]; !exists {
			entry.Data[k] = v
		}
	}
	return nil
}
