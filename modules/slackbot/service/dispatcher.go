package service

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"slack-meet-bot/core/config"
	"slack-meet-bot/core/constants"
	"slack-meet-bot/core/logger"
	"slack-meet-bot/core/metrics"
	"slack-meet-bot/core/utils"
	meetingservice "slack-meet-bot/modules/meeting/service"
	"slack-meet-bot/modules/slackbot/dto"
)

// CommandHandler is what the Slack bindings (socket mode and HTTP) call into.
// Implementations must be safe for concurrent use; every call runs on its own
// goroutine after the inbound request has been acknowledged.
type CommandHandler interface {
	OnSlashCommand(ctx context.Context, cmd dto.SlashCommand)
	OnMention(ctx context.Context, ev dto.MentionEvent)
	OnDirectMessage(ctx context.Context, ev dto.MessageEvent)
}

// Dispatcher turns Slack triggers into meeting creations and replies.
type Dispatcher struct {
	meetings           meetingservice.MeetingServiceInterface
	messenger          Messenger
	botUserID          string
	command            string
	maxDurationMinutes int
}

func NewDispatcher(meetings meetingservice.MeetingServiceInterface, messenger Messenger, cfg *config.Config, botUserID string) *Dispatcher {
	return &Dispatcher{
		meetings:           meetings,
		messenger:          messenger,
		botUserID:          botUserID,
		command:            cfg.Slack.Command,
		maxDurationMinutes: cfg.Meeting.MaxDurationMinutes,
	}
}

var _ CommandHandler = (*Dispatcher)(nil)

// OnSlashCommand sends exactly one reply to the command's response URL.
func (d *Dispatcher) OnSlashCommand(ctx context.Context, cmd dto.SlashCommand) {
	metrics.RecordCommand(metrics.TriggerSlashCommand)
	log := logger.With(
		"invocation_id", utils.GenerateID(),
		"command", cmd.Command,
		"user_id", cmd.UserID,
		"channel_id", cmd.ChannelID,
	)
	log.Info("Dispatcher:OnSlashCommand:Received", "text", cmd.Text)

	reply := d.createMeeting(ctx, cmd.Text, log)

	replyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.DefaultRequestTimeout)
	defer cancel()
	if err := d.messenger.Respond(replyCtx, cmd.ResponseURL, reply); err != nil {
		log.Error("Dispatcher:OnSlashCommand:RespondFailed", "error", err)
	}
}

// createMeeting never panics; anything unexpected is turned into an error reply.
func (d *Dispatcher) createMeeting(ctx context.Context, text string, log *slog.Logger) (reply dto.Reply) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Dispatcher:CreateMeeting:Panic", "panic", r, "stack", string(debug.Stack()))
			metrics.RecordMeeting(metrics.StatusFailed)
			reply = ErrorReply(fmt.Errorf("%v", r))
		}
	}()

	intent := meetingservice.ParseCommand(text)
	if intent.DurationMinutes < 1 || intent.DurationMinutes > d.maxDurationMinutes {
		log.Warn("Dispatcher:CreateMeeting:DurationRejected", "duration_minutes", intent.DurationMinutes)
		metrics.RecordMeeting(metrics.StatusRejected)
		return FailureReply(fmt.Sprintf("duration must be between 1 and %d minutes", d.maxDurationMinutes))
	}

	result := d.meetings.CreateMeeting(ctx, intent)
	if !result.Success {
		log.Warn("Dispatcher:CreateMeeting:Failed", "title", intent.Title, "error", result.Error)
		return FailureReply(result.Error)
	}

	log.Info("Dispatcher:CreateMeeting:Success", "meeting_id", result.MeetingID, "title", result.Title)
	return SuccessReply(result, intent.DurationMinutes)
}

func (d *Dispatcher) OnMention(ctx context.Context, ev dto.MentionEvent) {
	if d.isOwnMessage(ev.UserID, ev.BotID, "") {
		return
	}
	metrics.RecordCommand(metrics.TriggerMention)
	d.sayHelp(ctx, "Dispatcher:OnMention", ev.ChannelID, ev.UserID)
}

// OnDirectMessage only answers 1:1 conversations with the bot.
func (d *Dispatcher) OnDirectMessage(ctx context.Context, ev dto.MessageEvent) {
	if ev.ChannelType != constants.SlackChannelIM {
		return
	}
	if d.isOwnMessage(ev.UserID, ev.BotID, ev.SubType) {
		return
	}
	// edits and deletions arrive as message events too
	if ev.SubType != "" {
		return
	}
	metrics.RecordCommand(metrics.TriggerDirectMessage)
	d.sayHelp(ctx, "Dispatcher:OnDirectMessage", ev.ChannelID, ev.UserID)
}

func (d *Dispatcher) sayHelp(ctx context.Context, op, channelID, userID string) {
	replyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.DefaultRequestTimeout)
	defer cancel()

	if err := d.messenger.Say(replyCtx, channelID, HelpReply(d.command)); err != nil {
		logger.Error(op+":SayFailed", "channel_id", channelID, "user_id", userID, "error", err)
		return
	}
	logger.Debug(op+":HelpSent", "channel_id", channelID, "user_id", userID)
}

func (d *Dispatcher) isOwnMessage(userID, botID, subType string) bool {
	if botID != "" || subType == "bot_message" {
		return true
	}
	return d.botUserID != "" && userID == d.botUserID
}
