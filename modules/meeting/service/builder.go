package service

import (
	"time"

	"slack-meet-bot/core/constants"
	"slack-meet-bot/modules/meeting/dto"
)

// BuildMeetingRequest turns an intent into an event that starts at now (UTC).
// The conference request id only has second resolution; the provider scopes it
// per call so collisions between two requests in the same second are harmless.
func BuildMeetingRequest(intent dto.MeetingIntent, now time.Time) dto.MeetingRequest {
	start := now.UTC()
	return dto.MeetingRequest{
		Title:               intent.Title,
		Description:         intent.Description,
		StartTime:           start,
		EndTime:             start.Add(time.Duration(intent.DurationMinutes) * time.Minute),
		DurationMinutes:     intent.DurationMinutes,
		ConferenceRequestID: constants.ConferenceRequestIDPrefix + start.Format(constants.ConferenceRequestIDLayout),
		Reminders: []dto.Reminder{
			{Method: "email", MinutesBefore: constants.ReminderMinutesBefore},
			{Method: "popup", MinutesBefore: constants.ReminderMinutesBefore},
		},
		Attendees: []string{},
	}
}
