package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SERVER_ENVIRONMENT", "production")
	t.Setenv("GATE_PASSWORD", "open-sesame")
	t.Setenv("SESSION_SECRET", "test-session-signing-key")
	t.Setenv("NOTION_INTEGRATION_SECRET", "secret_abc")
	t.Setenv("NOTION_DATABASE_ID", "26732652a3f3817b9ba5ca78b8725aca")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, 5, cfg.Gate.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Gate.AttemptWindow)
	assert.Equal(t, time.Minute, cfg.Gate.BlockDuration)
	assert.Equal(t, 500*time.Millisecond, cfg.Gate.Delay)
	assert.Equal(t, RateLimitBackendMemory, cfg.Gate.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Session.Lifetime)
	assert.Equal(t, "mettaway_auth", cfg.Session.AuthCookie)
	assert.Equal(t, "mettaway_registered", cfg.Session.RegisterCookie)
	assert.Equal(t, StorageBackendNotion, cfg.Storage.Backend)
	assert.Equal(t, 50, cfg.Notion.MaxScanPages)
	assert.Equal(t, "mistral-large-latest", cfg.LLM.Model)
	assert.Equal(t, int64(100), cfg.LLM.MaxTokens)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, "appricot GmbH", cfg.Payment.AccountHolder)
}

func TestLoad_LegacyVariableNames(t *testing.T) {
	setRequired(t)
	t.Setenv("GMAIL_USER", "flock@example.com")
	t.Setenv("GMAIL_APP_PASSWORD", "app-pass")
	t.Setenv("MISTRAL_API_KEY", "mistral-key")
	t.Setenv("CONTACT_EMAIL", "hello@example.com")
	t.Setenv("NEXT_PUBLIC_BASE_URL", "https://ventara.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "flock@example.com", cfg.Mail.User)
	assert.Equal(t, "app-pass", cfg.Mail.Password)
	assert.True(t, cfg.Mail.Configured())
	assert.Equal(t, "mistral-key", cfg.LLM.APIKey)
	assert.Equal(t, "hello@example.com", cfg.Payment.ContactEmail)
	assert.Equal(t, "https://ventara.example.com", cfg.Server.BaseURL)
}

func TestLoad_NewNamesWinOverLegacy(t *testing.T) {
	setRequired(t)
	t.Setenv("MAIL_AUTH_USER", "new@example.com")
	t.Setenv("GMAIL_USER", "old@example.com")
	t.Setenv("SERVER_BASE_URL", "https://new.example.com")
	t.Setenv("NEXT_PUBLIC_BASE_URL", "https://old.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", cfg.Mail.User)
	assert.False(t, cfg.Mail.Configured())
	assert.Equal(t, "https://new.example.com", cfg.Server.BaseURL)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing password", map[string]string{"GATE_PASSWORD": "", "PASSWORD": ""}, "gate password"},
		{"bad port", map[string]string{"SERVER_PORT": "70000"}, "invalid server port"},
		{"bad gate backend", map[string]string{"GATE_BACKEND": "memcached"}, "invalid gate backend"},
		{"bad storage backend", map[string]string{"STORAGE_BACKEND": "sqlite"}, "invalid storage backend"},
		{"notion without database", map[string]string{"NOTION_DATABASE_ID": ""}, "NOTION_DATABASE_ID"},
		{"empty session secret in production", map[string]string{"SESSION_SECRET": ""}, "SESSION_SECRET"},
		{"default session secret in production", map[string]string{"SESSION_SECRET": DefaultSessionSecret}, "SESSION_SECRET"},
		{"bad sample rate", map[string]string{"OBSERVABILITY_SAMPLE_RATE": "1.5"}, "sample rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_DynamoDBBackendSkipsNotionCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_BACKEND", StorageBackendDynamoDB)
	t.Setenv("NOTION_INTEGRATION_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ventara-registrations", cfg.DynamoDB.TableName)
}

func TestLoad_DefaultSessionSecretAllowedInDevelopment(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_ENVIRONMENT", "development")
	t.Setenv("SESSION_SECRET", "")
	os.Unsetenv("SESSION_SECRET")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionSecret, cfg.Session.Secret)
}
