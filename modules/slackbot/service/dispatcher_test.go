package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"slack-meet-bot/core/config"
	apperrors "slack-meet-bot/core/errors"
	meetingdto "slack-meet-bot/modules/meeting/dto"
	"slack-meet-bot/modules/slackbot/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	target string
	reply  dto.Reply
}

type fakeMessenger struct {
	mu        sync.Mutex
	responded []sent
	said      []sent
	err       error
}

func (m *fakeMessenger) Respond(_ context.Context, responseURL string, reply dto.Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responded = append(m.responded, sent{responseURL, reply})
	return m.err
}

func (m *fakeMessenger) Say(_ context.Context, channelID string, reply dto.Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.said = append(m.said, sent{channelID, reply})
	return m.err
}

type fakeMeetings struct {
	mu      sync.Mutex
	calls   []meetingdto.MeetingIntent
	result  meetingdto.MeetingResult
	panicOn string
}

func (f *fakeMeetings) CreateMeeting(_ context.Context, intent meetingdto.MeetingIntent) meetingdto.MeetingResult {
	f.mu.Lock()
	f.calls = append(f.calls, intent)
	f.mu.Unlock()
	if f.panicOn != "" && intent.Title == f.panicOn {
		panic("nil pointer somewhere")
	}
	return f.result
}

func (f *fakeMeetings) GetMeeting(context.Context, string) (*meetingdto.MeetingResult, *apperrors.AppError) {
	return nil, apperrors.NewAppError(apperrors.ErrNotFound, "not found", nil)
}

func newDispatcher(meetings *fakeMeetings, messenger *fakeMessenger) *Dispatcher {
	cfg := &config.Config{
		Slack:   config.SlackConfig{Command: "/meet"},
		Meeting: config.MeetingConfig{MaxDurationMinutes: 1440},
	}
	return NewDispatcher(meetings, messenger, cfg, "UBOT")
}

func TestOnSlashCommand_Success(t *testing.T) {
	meetings := &fakeMeetings{result: meetingdto.MeetingResult{
		Success:      true,
		MeetingID:    "evt1",
		Title:        "Team Standup",
		MeetLink:     "https://meet.google.com/abc",
		CalendarLink: "https://calendar.google.com/event?eid=evt1",
	}}
	messenger := &fakeMessenger{}

	newDispatcher(meetings, messenger).OnSlashCommand(context.Background(), dto.SlashCommand{
		Command:     "/meet",
		Text:        "Team Standup 30m",
		ResponseURL: "https://hooks.slack.com/commands/T1/1/x",
	})

	require.Len(t, meetings.calls, 1)
	assert.Equal(t, meetingdto.MeetingIntent{Title: "Team Standup", DurationMinutes: 30}, meetings.calls[0])

	require.Len(t, messenger.responded, 1)
	assert.Empty(t, messenger.said)
	got := messenger.responded[0]
	assert.Equal(t, "https://hooks.slack.com/commands/T1/1/x", got.target)
	assert.Contains(t, got.reply.Text, "⏰ *Duration:* 30 minutes")
	assert.Len(t, got.reply.Blocks, 2)
}

func TestOnSlashCommand_ProviderFailure(t *testing.T) {
	meetings := &fakeMeetings{result: meetingdto.MeetingResult{Success: false, Error: "insufficient permissions"}}
	messenger := &fakeMessenger{}

	newDispatcher(meetings, messenger).OnSlashCommand(context.Background(), dto.SlashCommand{Text: ""})

	require.Len(t, meetings.calls, 1)
	assert.Equal(t, meetingdto.MeetingIntent{Title: "Quick Meeting", DurationMinutes: 60}, meetings.calls[0])
	require.Len(t, messenger.responded, 1)
	assert.Equal(t, "❌ Sorry, I couldn't create the meeting. Error: insufficient permissions", messenger.responded[0].reply.Text)
}

func TestOnSlashCommand_DurationOutOfRange(t *testing.T) {
	for _, text := range []string{"0m", "Marathon 25h", "99999999999999h"} {
		t.Run(text, func(t *testing.T) {
			meetings := &fakeMeetings{}
			messenger := &fakeMessenger{}

			newDispatcher(meetings, messenger).OnSlashCommand(context.Background(), dto.SlashCommand{Text: text})

			assert.Empty(t, meetings.calls)
			require.Len(t, messenger.responded, 1)
			assert.Equal(t,
				"❌ Sorry, I couldn't create the meeting. Error: duration must be between 1 and 1440 minutes",
				messenger.responded[0].reply.Text)
		})
	}
}

func TestOnSlashCommand_RecoversPanic(t *testing.T) {
	meetings := &fakeMeetings{panicOn: "Crash"}
	messenger := &fakeMessenger{}
	d := newDispatcher(meetings, messenger)

	assert.NotPanics(t, func() {
		d.OnSlashCommand(context.Background(), dto.SlashCommand{Text: "Crash 5m"})
	})
	require.Len(t, messenger.responded, 1)
	assert.Equal(t, "❌ An error occurred while creating the meeting: nil pointer somewhere", messenger.responded[0].reply.Text)
}

func TestOnSlashCommand_RespondErrorIsSwallowed(t *testing.T) {
	meetings := &fakeMeetings{result: meetingdto.MeetingResult{Success: true, Title: "x"}}
	messenger := &fakeMessenger{err: errors.New("webhook gone")}

	assert.NotPanics(t, func() {
		newDispatcher(meetings, messenger).OnSlashCommand(context.Background(), dto.SlashCommand{Text: "x"})
	})
	assert.Len(t, messenger.responded, 1)
}

func TestOnMention(t *testing.T) {
	messenger := &fakeMessenger{}
	d := newDispatcher(&fakeMeetings{}, messenger)

	d.OnMention(context.Background(), dto.MentionEvent{ChannelID: "C1", UserID: "U1", Text: "<@UBOT> hi"})
	d.OnMention(context.Background(), dto.MentionEvent{ChannelID: "C1", UserID: "UBOT"})
	d.OnMention(context.Background(), dto.MentionEvent{ChannelID: "C1", BotID: "B1"})

	require.Len(t, messenger.said, 1)
	assert.Equal(t, "C1", messenger.said[0].target)
	assert.Equal(t, dto.HelpText("/meet"), messenger.said[0].reply.Text)
}

func TestOnDirectMessage(t *testing.T) {
	tests := []struct {
		name     string
		ev       dto.MessageEvent
		wantHelp bool
	}{
		{"direct message", dto.MessageEvent{ChannelID: "D1", ChannelType: "im", UserID: "U1", Text: "hello"}, true},
		{"channel message", dto.MessageEvent{ChannelID: "C1", ChannelType: "channel", UserID: "U1"}, false},
		{"group message", dto.MessageEvent{ChannelID: "G1", ChannelType: "mpim", UserID: "U1"}, false},
		{"own message", dto.MessageEvent{ChannelID: "D1", ChannelType: "im", UserID: "UBOT"}, false},
		{"bot message", dto.MessageEvent{ChannelID: "D1", ChannelType: "im", BotID: "B1"}, false},
		{"bot subtype", dto.MessageEvent{ChannelID: "D1", ChannelType: "im", SubType: "bot_message"}, false},
		{"edited", dto.MessageEvent{ChannelID: "D1", ChannelType: "im", UserID: "U1", SubType: "message_changed"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messenger := &fakeMessenger{}
			newDispatcher(&fakeMeetings{}, messenger).OnDirectMessage(context.Background(), tt.ev)

			if !tt.wantHelp {
				assert.Empty(t, messenger.said)
				return
			}
			require.Len(t, messenger.said, 1)
			assert.Equal(t, tt.ev.ChannelID, messenger.said[0].target)
			assert.Equal(t, dto.HelpText("/meet"), messenger.said[0].reply.Text)
		})
	}
}

func TestOnMention_HelpUsesConfiguredCommand(t *testing.T) {
	messenger := &fakeMessenger{}
	cfg := &config.Config{
		Slack:   config.SlackConfig{Command: "/gmeet"},
		Meeting: config.MeetingConfig{MaxDurationMinutes: 1440},
	}
	d := NewDispatcher(&fakeMeetings{}, messenger, cfg, "UBOT")

	d.OnMention(context.Background(), dto.MentionEvent{ChannelID: "C1", UserID: "U1"})

	require.Len(t, messenger.said, 1)
	assert.Equal(t,
		"👋 Hi! Use `/gmeet` to create a Google Meet meeting. You can also specify a title and duration like `/gmeet Team Standup 30m`",
		messenger.said[0].reply.Text)
	assert.NotContains(t, messenger.said[0].reply.Text, "`/meet")
}
