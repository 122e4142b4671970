package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageBackendNotion   = "notion"
	StorageBackendDynamoDB = "dynamodb"

	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"

	// DefaultSessionSecret is only acceptable outside production.
	DefaultSessionSecret = "change-me-in-production"
)

type Config struct {
	Server        ServerConfig        `envconfig:"SERVER"`
	Gate          GateConfig          `envconfig:"GATE"`
	Session       SessionConfig       `envconfig:"SESSION"`
	Redis         RedisConfig         `envconfig:"REDIS"`
	Storage       StorageConfig       `envconfig:"STORAGE"`
	Notion        NotionConfig        `envconfig:"NOTION"`
	DynamoDB      DynamoDBConfig      `envconfig:"DYNAMODB"`
	LLM           LLMConfig           `envconfig:"LLM"`
	Mail          MailConfig          `envconfig:"MAIL"`
	Payment       PaymentConfig       `envconfig:"PAYMENT"`
	Sentry        SentryConfig        `envconfig:"SENTRY"`
	Observability ObservabilityConfig `envconfig:"OBSERVABILITY"`
	CORS          CORSConfig          `envconfig:"CORS"`
	Log           LogConfig           `envconfig:"LOG"`
	AWS           AWSConfig           `envconfig:"AWS"`
}

type ServerConfig struct {
	Port         string        `envconfig:"PORT" default:"8000"`
	Environment  string        `envconfig:"ENVIRONMENT" default:"development"`
	BaseURL      string        `envconfig:"BASE_URL" default:"http://localhost:3000"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"120s"`
}

// IsProduction reports whether cookies should be marked Secure.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// GateConfig holds the shared passphrase and the brute-force throttle.
type GateConfig struct {
	Password      string        `envconfig:"PASSWORD"`
	MaxAttempts   int           `envconfig:"MAX_ATTEMPTS" default:"5"`
	AttemptWindow time.Duration `envconfig:"ATTEMPT_WINDOW" default:"5m"`
	BlockDuration time.Duration `envconfig:"BLOCK_DURATION" default:"1m"`
	Delay         time.Duration `envconfig:"DELAY" default:"500ms"`
	Backend       string        `envconfig:"BACKEND" default:"memory"`
}

type SessionConfig struct {
	Secret         string        `envconfig:"SECRET" default:"change-me-in-production"`
	Lifetime       time.Duration `envconfig:"LIFETIME" default:"24h"`
	RegisteredTTL  time.Duration `envconfig:"REGISTERED_TTL" default:"8760h"`
	AuthCookie     string        `envconfig:"AUTH_COOKIE" default:"mettaway_auth"`
	RegisterCookie string        `envconfig:"REGISTER_COOKIE" default:"mettaway_registered"`
	// Enforce requires a session cookie on the oracle and submission routes.
	Enforce bool `envconfig:"ENFORCE" default:"false"`
}

type RedisConfig struct {
	Address             string        `envconfig:"ADDRESS" default:"localhost:6379"`
	Password            string        `envconfig:"AUTH_PASSWORD" default:""`
	Database            int           `envconfig:"DATABASE" default:"0"`
	MaxRetries          int           `envconfig:"MAX_RETRIES" default:"3"`
	PoolSize            int           `envconfig:"POOL_SIZE" default:"20"`
	PoolTimeout         time.Duration `envconfig:"POOL_TIMEOUT" default:"4s"`
	TLSEnabled          bool          `envconfig:"TLS_ENABLED" default:"false"`
	PasswordFromSecrets bool          `envconfig:"PASSWORD_FROM_SECRETS" default:"false"`
	KeyPrefix           string        `envconfig:"KEY_PREFIX" default:"ventara:gate:"`
}

type StorageConfig struct {
	Backend string `envconfig:"BACKEND" default:"notion"`
}

type NotionConfig struct {
	IntegrationSecret string `envconfig:"INTEGRATION_SECRET"`
	DatabaseID        string `envconfig:"DATABASE_ID"`
	MaxScanPages      int    `envconfig:"MAX_SCAN_PAGES" default:"50"`
}

type DynamoDBConfig struct {
	TableName    string `envconfig:"TABLE_NAME" default:"ventara-registrations"`
	Region       string `envconfig:"REGION" default:"eu-central-1"`
	MaxScanPages int    `envconfig:"MAX_SCAN_PAGES" default:"50"`
}

type LLMConfig struct {
	APIKey      string        `envconfig:"API_KEY"`
	BaseURL     string        `envconfig:"BASE_URL" default:"https://api.mistral.ai/v1/"`
	Model       string        `envconfig:"MODEL" default:"mistral-large-latest"`
	Temperature float64       `envconfig:"TEMPERATURE" default:"0.7"`
	MaxTokens   int64         `envconfig:"MAX_TOKENS" default:"100"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"20s"`
}

type MailConfig struct {
	Host        string        `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port        int           `envconfig:"SMTP_PORT" default:"587"`
	User        string        `envconfig:"AUTH_USER"`
	Password    string        `envconfig:"AUTH_PASSWORD"`
	FromName    string        `envconfig:"FROM_NAME" default:"Mettaway"`
	SendTimeout time.Duration `envconfig:"SEND_TIMEOUT" default:"30s"`
}

// Configured reports whether SMTP credentials are present.
func (m MailConfig) Configured() bool {
	return m.User != "" && m.Password != ""
}

type PaymentConfig struct {
	IBAN          string `envconfig:"IBAN"`
	AccountHolder string `envconfig:"ACCOUNT_HOLDER" default:"appricot GmbH"`
	Address       string `envconfig:"ADDRESS" default:"Industriestrasse 70, 6300 Zug, Switzerland"`
	RevolutName   string `envconfig:"REVOLUT_NAME" default:"Lukas Hotz"`
	Phone         string `envconfig:"PHONE"`
	TwintLink     string `envconfig:"TWINT_LINK" default:"https://go.twint.ch/1/e/tw?tw=acq.N_syTGB2S22l8iFj2bOfdrVCi15qZNvseICaSQyvpc0ZmjpIn1MPE6CKOzOenu7T."`
	ContactEmail  string `envconfig:"CONTACT_EMAIL"`
}

type SentryConfig struct {
	DSN          string        `envconfig:"DSN"`
	Debug        bool          `envconfig:"DEBUG" default:"false"`
	FlushTimeout time.Duration `envconfig:"FLUSH_TIMEOUT" default:"2s"`
}

type ObservabilityConfig struct {
	MetricsPath    string  `envconfig:"METRICS_PATH" default:"/metrics"`
	OTLPEndpoint   string  `envconfig:"OTLP_ENDPOINT" default:"http://localhost:4318"`
	TraceExporter  string  `envconfig:"TRACE_EXPORTER" default:"otlp"`
	TracingEnabled bool    `envconfig:"TRACING_ENABLED" default:"false"`
	SampleRate     float64 `envconfig:"SAMPLE_RATE" default:"0.1"`
}

type CORSConfig struct {
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"http://localhost:3000"`
}

type LogConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"json"`
}

type AWSConfig struct {
	Region     string `envconfig:"REGION" default:"eu-central-1"`
	Profile    string `envconfig:"PROFILE" default:""`
	SecretName string `envconfig:"SECRET_NAME" default:""`
}

func Load() (*Config, error) {
	// Local development keeps secrets in .env; a missing file is fine.
	if os.Getenv("SERVER_ENVIRONMENT") != "production" {
		_ = godotenv.Load()
	}

	var cfg Config

	// Load from environment variables
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	applyLegacyEnv(&cfg)

	// Validate required fields
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyLegacyEnv honours the variable names the previous deployment used.
func applyLegacyEnv(cfg *Config) {
	fallbacks := []struct {
		target *string
		name   string
	}{
		{&cfg.Gate.Password, "PASSWORD"},
		{&cfg.Mail.User, "GMAIL_USER"},
		{&cfg.Mail.Password, "GMAIL_APP_PASSWORD"},
		{&cfg.LLM.APIKey, "MISTRAL_API_KEY"},
		{&cfg.Payment.ContactEmail, "CONTACT_EMAIL"},
	}
	for _, f := range fallbacks {
		if *f.target != "" {
			continue
		}
		if v := strings.TrimSpace(os.Getenv(f.name)); v != "" {
			*f.target = v
		}
	}

	// SERVER_BASE_URL carries a default, so the legacy name only wins when
	// the new one is unset.
	if os.Getenv("SERVER_BASE_URL") == "" {
		if v := strings.TrimSpace(os.Getenv("NEXT_PUBLIC_BASE_URL")); v != "" {
			cfg.Server.BaseURL = v
		}
	}
}

func validateConfig(cfg *Config) error {
	// Validate port
	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %s", cfg.Server.Port)
	}

	if cfg.Gate.Password == "" {
		return fmt.Errorf("gate password is required (GATE_PASSWORD)")
	}
	if cfg.Gate.MaxAttempts < 1 {
		return fmt.Errorf("invalid gate max attempts: %d", cfg.Gate.MaxAttempts)
	}
	if cfg.Gate.AttemptWindow <= 0 || cfg.Gate.BlockDuration <= 0 || cfg.Gate.Delay < 0 {
		return fmt.Errorf("gate durations must be positive")
	}

	switch cfg.Gate.Backend {
	case RateLimitBackendMemory, RateLimitBackendRedis:
	default:
		return fmt.Errorf("invalid gate backend: %s", cfg.Gate.Backend)
	}

	switch cfg.Storage.Backend {
	case StorageBackendNotion:
		if cfg.Notion.IntegrationSecret == "" || cfg.Notion.DatabaseID == "" {
			return fmt.Errorf("notion backend requires NOTION_INTEGRATION_SECRET and NOTION_DATABASE_ID")
		}
	case StorageBackendDynamoDB:
		if cfg.DynamoDB.TableName == "" {
			return fmt.Errorf("dynamodb backend requires DYNAMODB_TABLE_NAME")
		}
	default:
		return fmt.Errorf("invalid storage backend: %s", cfg.Storage.Backend)
	}

	if cfg.Server.IsProduction() {
		if secret := strings.TrimSpace(cfg.Session.Secret); secret == "" || secret == DefaultSessionSecret {
			return fmt.Errorf("session secret must be set in production (SESSION_SECRET)")
		}
	}
	if cfg.Session.Lifetime <= 0 {
		return fmt.Errorf("invalid session lifetime: %s", cfg.Session.Lifetime)
	}

	// Validate sample rate
	if cfg.Observability.SampleRate < 0 || cfg.Observability.SampleRate > 1 {
		return fmt.Errorf("invalid tracing sample rate: %f", cfg.Observability.SampleRate)
	}

	return nil
}
