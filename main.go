package main

import (
	"os"

	"slack-meet-bot/core/logger"
	"slack-meet-bot/core/server"
)

// @title Slack Meet Bot API
// @version 1.0
// @description Slack slash command bot that creates instant Google Meet meetings

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
		os.Exit(1)
	}
}
