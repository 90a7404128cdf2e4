package dto

import (
	"fmt"

	"github.com/slack-go/slack"
)

// HelpText is posted when the bot is mentioned or messaged directly.
func HelpText(command string) string {
	return fmt.Sprintf("👋 Hi! Use `%[1]s` to create a Google Meet meeting. "+
		"You can also specify a title and duration like `%[1]s Team Standup 30m`", command)
}

// ===================== Inbound DTOs =====================

// SlashCommand is the part of a slash command invocation the bot uses.
type SlashCommand struct {
	Command     string `json:"command"`
	Text        string `json:"text"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	ChannelID   string `json:"channel_id"`
	TeamID      string `json:"team_id"`
	ResponseURL string `json:"response_url"`
	TriggerID   string `json:"trigger_id"`
}

// MentionEvent is an app_mention event.
type MentionEvent struct {
	ChannelID string `json:"channel"`
	UserID    string `json:"user"`
	BotID     string `json:"bot_id,omitempty"`
	Text      string `json:"text"`
}

// MessageEvent is a message event from any channel the bot can see.
type MessageEvent struct {
	ChannelID   string `json:"channel"`
	ChannelType string `json:"channel_type"`
	UserID      string `json:"user"`
	BotID       string `json:"bot_id,omitempty"`
	SubType     string `json:"subtype,omitempty"`
	Text        string `json:"text"`
}

// ===================== Outbound DTOs =====================

// Reply is one message sent back to Slack. Blocks is optional; Text is
// always set so notifications and clients without block support still work.
type Reply struct {
	Text   string        `json:"text"`
	Blocks []slack.Block `json:"blocks,omitempty"`
}
