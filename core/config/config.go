package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"slack-meet-bot/core/constants"
	"slack-meet-bot/core/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is built once at startup and passed by pointer to every component.
// Nothing in it is mutated after Load returns.
type Config struct {
	Server    ServerConfig
	Slack     SlackConfig
	GoogleAPI GoogleAPIConfig
	Meeting   MeetingConfig
	Auth      AuthConfig
	Log       LogConfig
}

type ServerConfig struct {
	Env      string
	HTTPPort string
}

type SlackConfig struct {
	BotToken      string
	SigningSecret string
	AppToken      string
	Command       string
	Mode          string // socket | http
	BotUserID     string
}

type GoogleAPIConfig struct {
	CredentialsFile string
	TokenFile       string
	CalendarID      string
	Timeout         time.Duration
}

type MeetingConfig struct {
	MaxDurationMinutes int
}

// AuthConfig guards the HTTP meeting lookup API. An empty JWTSecret leaves
// that API unregistered.
type AuthConfig struct {
	JWTSecret string
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

var requiredKeys = []string{
	"SLACK_BOT_TOKEN",
	"SLACK_SIGNING_SECRET",
	"SLACK_APP_TOKEN",
	"GOOGLE_CREDENTIALS_FILE",
	"GOOGLE_TOKEN_FILE",
}

// Load reads .env (if present) and the process environment.
// Any missing or invalid value is returned as a single startup error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.NewAppError(errors.ErrInvalidConfig, "failed to read .env file", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Env:      v.GetString("ENV"),
			HTTPPort: v.GetString("HTTP_PORT"),
		},
		Slack: SlackConfig{
			BotToken:      v.GetString("SLACK_BOT_TOKEN"),
			SigningSecret: v.GetString("SLACK_SIGNING_SECRET"),
			AppToken:      v.GetString("SLACK_APP_TOKEN"),
			Command:       v.GetString("SLACK_COMMAND"),
			Mode:          strings.ToLower(v.GetString("SLACK_MODE")),
			BotUserID:     v.GetString("BOT_USER_ID"),
		},
		GoogleAPI: GoogleAPIConfig{
			CredentialsFile: v.GetString("GOOGLE_CREDENTIALS_FILE"),
			TokenFile:       v.GetString("GOOGLE_TOKEN_FILE"),
			CalendarID:      v.GetString("CALENDAR_ID"),
		},
		Meeting: MeetingConfig{
			MaxDurationMinutes: v.GetInt("MEETING_MAX_DURATION_MINUTES"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("API_JWT_SECRET"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
			File:   v.GetString("LOG_FILE"),
		},
	}

	if missing := missingKeys(v); len(missing) > 0 {
		return nil, errors.NewAppError(errors.ErrMissingConfig,
			"missing required environment variables: "+strings.Join(missing, ", "), nil)
	}

	timeout, err := parseDuration(v.GetString("CALENDAR_TIMEOUT"))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidConfig,
			fmt.Sprintf("invalid CALENDAR_TIMEOUT: %q (use seconds or a duration like 30s)", v.GetString("CALENDAR_TIMEOUT")), err)
	}
	cfg.GoogleAPI.Timeout = timeout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "dev")
	v.SetDefault("HTTP_PORT", constants.DefaultHTTPPort)
	v.SetDefault("SLACK_COMMAND", constants.DefaultSlashCommand)
	v.SetDefault("SLACK_MODE", constants.SlackModeSocket)
	v.SetDefault("GOOGLE_CREDENTIALS_FILE", constants.DefaultCredentialsFile)
	v.SetDefault("GOOGLE_TOKEN_FILE", constants.DefaultTokenFile)
	v.SetDefault("CALENDAR_ID", constants.DefaultCalendarID)
	v.SetDefault("CALENDAR_TIMEOUT", constants.DefaultTimeout.String())
	v.SetDefault("MEETING_MAX_DURATION_MINUTES", constants.DefaultMaxMeetingDuration)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")
}

// parseDuration reads a bare integer as whole seconds, anything else as a Go
// duration string.
func parseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(raw)
}

func missingKeys(v *viper.Viper) []string {
	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// Validate checks values that have a default but can still be set to nonsense,
// and that the Google credential files actually exist.
func (c *Config) Validate() error {
	var problems []string

	for _, f := range []struct{ key, path string }{
		{"GOOGLE_CREDENTIALS_FILE", c.GoogleAPI.CredentialsFile},
		{"GOOGLE_TOKEN_FILE", c.GoogleAPI.TokenFile},
	} {
		if _, err := os.Stat(f.path); err != nil {
			problems = append(problems, fmt.Sprintf("%s: file %q not readable: %v", f.key, f.path, err))
		}
	}

	if c.Slack.Mode != constants.SlackModeSocket && c.Slack.Mode != constants.SlackModeHTTP {
		problems = append(problems, fmt.Sprintf("invalid SLACK_MODE: %s (must be: socket, http)", c.Slack.Mode))
	}
	if !strings.HasPrefix(c.Slack.Command, "/") {
		problems = append(problems, fmt.Sprintf("invalid SLACK_COMMAND: %q (must start with /)", c.Slack.Command))
	}
	if port, err := strconv.Atoi(c.Server.HTTPPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid HTTP_PORT value: %s (must be 1-65535)", c.Server.HTTPPort))
	}
	if c.GoogleAPI.Timeout < constants.MinCalendarTimeout {
		problems = append(problems, fmt.Sprintf("invalid CALENDAR_TIMEOUT: %s (must be at least %s)", c.GoogleAPI.Timeout, constants.MinCalendarTimeout))
	}
	if c.Meeting.MaxDurationMinutes < 1 {
		problems = append(problems, "MEETING_MAX_DURATION_MINUTES must be at least 1")
	}

	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < constants.MinJWTSecretLength {
		problems = append(problems, fmt.Sprintf("API_JWT_SECRET must be at least %d characters", constants.MinJWTSecretLength))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Log.Level] {
		problems = append(problems, fmt.Sprintf("invalid LOG_LEVEL: %s (must be: debug, info, warn, error)", c.Log.Level))
	}
	validLogFormats := map[string]bool{"": true, "text": true, "json": true}
	if !validLogFormats[c.Log.Format] {
		problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT: %s (must be: text, json)", c.Log.Format))
	}

	if len(problems) > 0 {
		return errors.NewAppError(errors.ErrInvalidConfig, strings.Join(problems, "; "), nil)
	}
	return nil
}

// MeetingAPIEnabled reports whether GET /api/v1/meetings/:id is served.
func (c *Config) MeetingAPIEnabled() bool {
	return c.Auth.JWTSecret != ""
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "prod" || c.Server.Env == "production"
}
