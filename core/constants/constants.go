package constants

import "time"

const (
	DefaultTimeout        = 30 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	ShutdownTimeout       = 10 * time.Second
	MinCalendarTimeout    = time.Second

	DefaultCalendarID      = "primary"
	DefaultSlashCommand    = "/meet"
	DefaultHTTPPort        = "8080"
	DefaultCredentialsFile = "credentials.json"
	DefaultTokenFile       = "token.json"

	DefaultMeetingTitle       = "Quick Meeting"
	DefaultMeetingDuration    = 60
	DefaultMaxMeetingDuration = 24 * 60
	ReminderMinutesBefore     = 10

	ConferenceSolutionHangoutsMeet = "hangoutsMeet"
	ConferenceRequestIDPrefix      = "meet-"
	ConferenceRequestIDLayout      = "20060102150405"
	EventTimeZone                  = "UTC"

	SlackModeSocket = "socket"
	SlackModeHTTP   = "http"
	SlackChannelIM  = "im"

	ContextRequestID = "request_id"
	ContextTokenData = "token_data"

	// private extended property stamped on every event the bot creates
	EventOwnerProperty = "createdBy"
	EventOwnerValue    = "slack-meet-bot"

	TokenIssuer        = "slack-meet-bot"
	ScopeMeetingsRead  = "meetings:read"
	MinJWTSecretLength = 32
	DefaultTokenTTL    = 24 * time.Hour
)
