package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"slack-meet-bot/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentialFiles(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	creds := filepath.Join(dir, "credentials.json")
	token := filepath.Join(dir, "token.json")
	require.NoError(t, os.WriteFile(creds, []byte(`{"installed":{}}`), 0o600))
	require.NoError(t, os.WriteFile(token, []byte(`{}`), 0o600))
	return creds, token
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	creds, token := writeCredentialFiles(t)
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_SIGNING_SECRET", "secret")
	t.Setenv("SLACK_APP_TOKEN", "xapp-test")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", creds)
	t.Setenv("GOOGLE_TOKEN_FILE", token)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "xoxb-test", cfg.Slack.BotToken)
	assert.Equal(t, "/meet", cfg.Slack.Command)
	assert.Equal(t, "socket", cfg.Slack.Mode)
	assert.Equal(t, "primary", cfg.GoogleAPI.CalendarID)
	assert.Equal(t, 30*time.Second, cfg.GoogleAPI.Timeout)
	assert.Equal(t, 1440, cfg.Meeting.MaxDurationMinutes)
	assert.Equal(t, "8080", cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SLACK_MODE", "HTTP")
	t.Setenv("SLACK_COMMAND", "/gmeet")
	t.Setenv("CALENDAR_ID", "team@example.com")
	t.Setenv("CALENDAR_TIMEOUT", "5s")
	t.Setenv("MEETING_MAX_DURATION_MINUTES", "240")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http", cfg.Slack.Mode)
	assert.Equal(t, "/gmeet", cfg.Slack.Command)
	assert.Equal(t, "team@example.com", cfg.GoogleAPI.CalendarID)
	assert.Equal(t, 5*time.Second, cfg.GoogleAPI.Timeout)
	assert.Equal(t, 240, cfg.Meeting.MaxDurationMinutes)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_MissingSlackTokens(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("SLACK_APP_TOKEN", "")

	_, err := Load()
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrMissingConfig, appErr.Code)
	assert.Contains(t, appErr.Message, "SLACK_BOT_TOKEN")
	assert.Contains(t, appErr.Message, "SLACK_APP_TOKEN")
	assert.NotContains(t, appErr.Message, "SLACK_SIGNING_SECRET")
}

func TestLoad_MissingTokenFile(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOOGLE_TOKEN_FILE", filepath.Join(t.TempDir(), "absent.json"))

	_, err := Load()
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrInvalidConfig, appErr.Code)
	assert.Contains(t, appErr.Message, "GOOGLE_TOKEN_FILE")
}

func TestValidate(t *testing.T) {
	creds, token := writeCredentialFiles(t)
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Env: "dev", HTTPPort: "8080"},
			Slack:     SlackConfig{Command: "/meet", Mode: "socket"},
			GoogleAPI: GoogleAPIConfig{CredentialsFile: creds, TokenFile: token, Timeout: time.Second},
			Meeting:   MeetingConfig{MaxDurationMinutes: 60},
			Log:       LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad mode", func(c *Config) { c.Slack.Mode = "webhook" }, "SLACK_MODE"},
		{"bad command", func(c *Config) { c.Slack.Command = "meet" }, "SLACK_COMMAND"},
		{"bad port", func(c *Config) { c.Server.HTTPPort = "70000" }, "HTTP_PORT"},
		{"zero timeout", func(c *Config) { c.GoogleAPI.Timeout = 0 }, "CALENDAR_TIMEOUT"},
		{"sub-second timeout", func(c *Config) { c.GoogleAPI.Timeout = 30 * time.Nanosecond }, "CALENDAR_TIMEOUT"},
		{"zero max duration", func(c *Config) { c.Meeting.MaxDurationMinutes = 0 }, "MEETING_MAX_DURATION_MINUTES"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "LOG_FORMAT"},
		{"short jwt secret", func(c *Config) { c.Auth.JWTSecret = "changeme" }, "API_JWT_SECRET"},
		{"long jwt secret", func(c *Config) { c.Auth.JWTSecret = "0123456789abcdef0123456789abcdef" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_CalendarTimeout(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{"30", 30 * time.Second, false},
		{"45s", 45 * time.Second, false},
		{"2m", 2 * time.Minute, false},
		{" 10 ", 10 * time.Second, false},
		{"500ms", 0, true},
		{"0", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("CALENDAR_TIMEOUT", tt.raw)

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				var appErr *errors.AppError
				require.True(t, stderrors.As(err, &appErr))
				assert.Equal(t, errors.ErrInvalidConfig, appErr.Code)
				assert.Contains(t, appErr.Message, "CALENDAR_TIMEOUT")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.GoogleAPI.Timeout)
		})
	}
}

func TestLoad_MeetingAPIEnabled(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MeetingAPIEnabled())

	t.Setenv("API_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.MeetingAPIEnabled())

	t.Setenv("API_JWT_SECRET", "short")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_JWT_SECRET")
}
