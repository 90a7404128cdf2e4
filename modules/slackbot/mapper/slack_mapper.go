package mapper

import (
	"slack-meet-bot/modules/slackbot/dto"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

func ToSlashCommand(cmd slack.SlashCommand) dto.SlashCommand {
	return dto.SlashCommand{
		Command:     cmd.Command,
		Text:        cmd.Text,
		UserID:      cmd.UserID,
		UserName:    cmd.UserName,
		ChannelID:   cmd.ChannelID,
		TeamID:      cmd.TeamID,
		ResponseURL: cmd.ResponseURL,
		TriggerID:   cmd.TriggerID,
	}
}

func ToMentionEvent(ev *slackevents.AppMentionEvent) dto.MentionEvent {
	return dto.MentionEvent{
		ChannelID: ev.Channel,
		UserID:    ev.User,
		BotID:     ev.BotID,
		Text:      ev.Text,
	}
}

func ToMessageEvent(ev *slackevents.MessageEvent) dto.MessageEvent {
	return dto.MessageEvent{
		ChannelID:   ev.Channel,
		ChannelType: ev.ChannelType,
		UserID:      ev.User,
		BotID:       ev.BotID,
		SubType:     ev.SubType,
		Text:        ev.Text,
	}
}
