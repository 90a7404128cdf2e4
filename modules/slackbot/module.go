package slackbot

import (
	"context"

	"slack-meet-bot/core/config"
	"slack-meet-bot/core/constants"
	"slack-meet-bot/core/logger"
	meetingservice "slack-meet-bot/modules/meeting/service"
	"slack-meet-bot/modules/slackbot/controller"
	"slack-meet-bot/modules/slackbot/router"
	"slack-meet-bot/modules/slackbot/service"
	"slack-meet-bot/modules/slackbot/socket"

	"github.com/labstack/echo/v4"
	"github.com/slack-go/slack"
)

// Module owns the dispatcher and whichever Slack transport is configured.
type Module struct {
	Dispatcher *service.Dispatcher

	listener   *socket.Listener
	controller *controller.SlackController
}

// Init builds the dispatcher and binds it to socket mode or, in HTTP mode,
// to signed routes on e.
func Init(e *echo.Echo, api *slack.Client, meetings meetingservice.MeetingServiceInterface, cfg *config.Config, botUserID string) *Module {
	messenger := service.NewSlackMessenger(api)
	dispatcher := service.NewDispatcher(meetings, messenger, cfg, botUserID)

	m := &Module{Dispatcher: dispatcher}
	if cfg.Slack.Mode == constants.SlackModeHTTP {
		m.controller = controller.NewSlackController(dispatcher, cfg.Slack.Command)
		router.NewSlackRouter(m.controller).Setup(e, cfg.Slack.SigningSecret)
	} else {
		m.listener = socket.NewListener(api, dispatcher, cfg)
	}
	return m
}

// Run blocks until ctx is cancelled. In socket mode it also waits for
// in-flight invocations; in HTTP mode call Wait after the server has shut down.
func (m *Module) Run(ctx context.Context) error {
	if m.listener != nil {
		return m.listener.Run(ctx)
	}

	logger.Info("Slackbot:Run:HTTPMode")
	<-ctx.Done()
	return nil
}

// Wait blocks until HTTP-mode invocations have replied.
func (m *Module) Wait() {
	if m.controller != nil {
		m.controller.Wait()
	}
}

// ResolveBotUserID returns the configured bot user id, or asks auth.test for it.
// An empty result only weakens the self-message filter to bot_id checks.
func ResolveBotUserID(ctx context.Context, api *slack.Client, cfg *config.Config) string {
	if cfg.Slack.BotUserID != "" {
		return cfg.Slack.BotUserID
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	resp, err := api.AuthTestContext(ctx)
	if err != nil {
		logger.Warn("Slackbot:ResolveBotUserID:AuthTestFailed", "error", err)
		return ""
	}
	logger.Info("Slackbot:ResolveBotUserID:Resolved", "user_id", resp.UserID, "team", resp.Team)
	return resp.UserID
}
