package router

import (
	"slack-meet-bot/core/middleware"
	"slack-meet-bot/modules/slackbot/controller"

	"github.com/labstack/echo/v4"
)

// SlackRouter handles Slack HTTP-mode routes
type SlackRouter struct {
	SlackController *controller.SlackController
}

// NewSlackRouter creates a new router
func NewSlackRouter(slackController *controller.SlackController) *SlackRouter {
	return &SlackRouter{
		SlackController: slackController,
	}
}

// Setup registers Slack routes behind signature verification
func (r *SlackRouter) Setup(e *echo.Echo, signingSecret string) {
	slackRoutes := e.Group("/slack", middleware.VerifySlackSignature(signingSecret))

	slackRoutes.POST("/commands", r.SlackController.SlashCommand)
	slackRoutes.POST("/events", r.SlackController.Events)
}
