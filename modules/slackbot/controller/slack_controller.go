package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"slack-meet-bot/core/controller"
	"slack-meet-bot/core/errors"
	"slack-meet-bot/core/logger"
	"slack-meet-bot/modules/slackbot/mapper"
	"slack-meet-bot/modules/slackbot/service"

	"github.com/labstack/echo/v4"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

const headerSlackRetryNum = "X-Slack-Retry-Num"

// SlackController receives slash commands and Events API callbacks over HTTP.
// Requests reaching it have already passed signature verification.
type SlackController struct {
	controller.BaseController
	Handler service.CommandHandler
	command string

	wg sync.WaitGroup
}

// NewSlackController creates a new controller
func NewSlackController(handler service.CommandHandler, command string) *SlackController {
	return &SlackController{
		BaseController: controller.NewBaseController(),
		Handler:        handler,
		command:        command,
	}
}

// SlashCommand handles POST /slack/commands
// @Summary Slack slash command
// @Description Acknowledges the command at once; the meeting reply is sent to the command's response_url.
// @Tags Slack
// @Accept x-www-form-urlencoded
// @Param X-Slack-Signature header string true "Slack request signature"
// @Param X-Slack-Request-Timestamp header string true "Slack request timestamp"
// @Success 200
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Router /slack/commands [post]
func (c *SlackController) SlashCommand(ctx echo.Context) error {
	cmd, err := slack.SlashCommandParse(ctx.Request())
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid slash command payload")
	}

	if cmd.Command != c.command {
		logger.Warn("SlackController:SlashCommand:UnknownCommand", "command", cmd.Command)
		return ctx.NoContent(http.StatusOK)
	}

	sc := mapper.ToSlashCommand(cmd)
	c.dispatch(ctx, func(hctx context.Context) { c.Handler.OnSlashCommand(hctx, sc) })
	return ctx.NoContent(http.StatusOK)
}

// Events handles POST /slack/events
// @Summary Slack Events API callback
// @Description Echoes url_verification challenges and handles app_mention and message events.
// @Tags Slack
// @Accept json
// @Produce plain
// @Param X-Slack-Signature header string true "Slack request signature"
// @Param X-Slack-Request-Timestamp header string true "Slack request timestamp"
// @Success 200 {string} string "challenge, for url_verification"
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Router /slack/events [post]
func (c *SlackController) Events(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Failed to read request body")
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid event payload")
	}

	switch event.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			return c.BadRequest(errors.ErrInvalidRequestData, "Invalid url_verification payload")
		}
		return ctx.String(http.StatusOK, challenge.Challenge)

	case slackevents.CallbackEvent:
		// the first delivery was already acked and handled
		if retry := ctx.Request().Header.Get(headerSlackRetryNum); retry != "" {
			logger.Debug("SlackController:Events:RetrySkipped", "retry", retry)
			return ctx.NoContent(http.StatusOK)
		}

		switch inner := event.InnerEvent.Data.(type) {
		case *slackevents.AppMentionEvent:
			ev := mapper.ToMentionEvent(inner)
			c.dispatch(ctx, func(hctx context.Context) { c.Handler.OnMention(hctx, ev) })
		case *slackevents.MessageEvent:
			ev := mapper.ToMessageEvent(inner)
			c.dispatch(ctx, func(hctx context.Context) { c.Handler.OnDirectMessage(hctx, ev) })
		}
	}

	return ctx.NoContent(http.StatusOK)
}

// Wait blocks until every dispatched handler has returned.
func (c *SlackController) Wait() {
	c.wg.Wait()
}

func (c *SlackController) dispatch(ctx echo.Context, fn func(context.Context)) {
	hctx := context.WithoutCancel(ctx.Request().Context())
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn(hctx)
	}()
}
