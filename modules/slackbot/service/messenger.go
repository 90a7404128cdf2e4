package service

import (
	"context"

	"slack-meet-bot/core/errors"
	"slack-meet-bot/modules/slackbot/dto"

	"github.com/slack-go/slack"
)

// Messenger delivers replies back to Slack.
type Messenger interface {
	// Respond answers a slash command through its response URL.
	Respond(ctx context.Context, responseURL string, reply dto.Reply) error
	// Say posts a message in a channel as the bot.
	Say(ctx context.Context, channelID string, reply dto.Reply) error
}

type SlackMessenger struct {
	client *slack.Client
}

func NewSlackMessenger(client *slack.Client) *SlackMessenger {
	return &SlackMessenger{client: client}
}

func (m *SlackMessenger) Respond(ctx context.Context, responseURL string, reply dto.Reply) error {
	if responseURL == "" {
		return errors.NewAppError(errors.ErrSlackReply, "slash command has no response_url", nil)
	}

	msg := &slack.WebhookMessage{Text: reply.Text}
	if len(reply.Blocks) > 0 {
		msg.Blocks = &slack.Blocks{BlockSet: reply.Blocks}
	}
	if err := slack.PostWebhookContext(ctx, responseURL, msg); err != nil {
		return errors.NewAppError(errors.ErrSlackReply, "failed to respond to slash command", err)
	}
	return nil
}

func (m *SlackMessenger) Say(ctx context.Context, channelID string, reply dto.Reply) error {
	opts := []slack.MsgOption{slack.MsgOptionText(reply.Text, false)}
	if len(reply.Blocks) > 0 {
		opts = append(opts, slack.MsgOptionBlocks(reply.Blocks...))
	}
	if _, _, err := m.client.PostMessageContext(ctx, channelID, opts...); err != nil {
		return errors.NewAppError(errors.ErrSlackReply, "failed to post message", err)
	}
	return nil
}
