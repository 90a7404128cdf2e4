package service

import (
	"fmt"

	meetingdto "slack-meet-bot/modules/meeting/dto"
	"slack-meet-bot/modules/slackbot/dto"

	"github.com/slack-go/slack"
)

const (
	actionJoinMeeting    = "join_meeting"
	actionViewInCalendar = "view_in_calendar"
)

// SuccessReply renders a created meeting. durationMinutes is the requested
// duration, not one derived from the provider's start and end.
func SuccessReply(result meetingdto.MeetingResult, durationMinutes int) dto.Reply {
	text := "🎉 *Meeting Created Successfully!*\n\n" +
		fmt.Sprintf("📅 *Title:* %s\n", result.Title) +
		fmt.Sprintf("⏰ *Duration:* %d minutes\n", durationMinutes) +
		fmt.Sprintf("🔗 *Google Meet Link:* %s\n", result.MeetLink) +
		fmt.Sprintf("📋 *Calendar Event:* %s", result.CalendarLink)

	blocks := []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
	}

	// Slack rejects a url button with an empty url
	var buttons []slack.BlockElement
	if result.MeetLink != "" {
		join := slack.NewButtonBlockElement(actionJoinMeeting, result.MeetingID,
			slack.NewTextBlockObject(slack.PlainTextType, "Join Meeting", false, false)).
			WithStyle(slack.StylePrimary)
		join.URL = result.MeetLink
		buttons = append(buttons, join)
	}
	if result.CalendarLink != "" {
		view := slack.NewButtonBlockElement(actionViewInCalendar, result.MeetingID,
			slack.NewTextBlockObject(slack.PlainTextType, "View in Calendar", false, false))
		view.URL = result.CalendarLink
		buttons = append(buttons, view)
	}
	if len(buttons) > 0 {
		blocks = append(blocks, slack.NewActionBlock("", buttons...))
	}

	return dto.Reply{Text: text, Blocks: blocks}
}

// FailureReply reports a provider-side failure verbatim.
func FailureReply(reason string) dto.Reply {
	if reason == "" {
		reason = "Unknown error"
	}
	return dto.Reply{Text: fmt.Sprintf("❌ Sorry, I couldn't create the meeting. Error: %s", reason)}
}

// ErrorReply reports an internal failure.
func ErrorReply(err error) dto.Reply {
	return dto.Reply{Text: fmt.Sprintf("❌ An error occurred while creating the meeting: %v", err)}
}

func HelpReply(command string) dto.Reply {
	return dto.Reply{Text: dto.HelpText(command)}
}
