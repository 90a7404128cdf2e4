package mapper

import (
	"strings"
	"time"

	"slack-meet-bot/core/constants"
	"slack-meet-bot/modules/meeting/dto"

	"google.golang.org/api/calendar/v3"
)

// ToCalendarEvent maps a request to the Calendar v3 insert payload, asking the
// provider to generate a Meet conference for it.
func ToCalendarEvent(req dto.MeetingRequest) *calendar.Event {
	overrides := make([]*calendar.EventReminder, 0, len(req.Reminders))
	for _, r := range req.Reminders {
		overrides = append(overrides, &calendar.EventReminder{
			Method:  r.Method,
			Minutes: int64(r.MinutesBefore),
		})
	}

	attendees := make([]*calendar.EventAttendee, 0, len(req.Attendees))
	for _, email := range req.Attendees {
		attendees = append(attendees, &calendar.EventAttendee{Email: email})
	}

	return &calendar.Event{
		Summary:     req.Title,
		Description: req.Description,
		Start: &calendar.EventDateTime{
			DateTime: formatEventTime(req.StartTime),
			TimeZone: constants.EventTimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: formatEventTime(req.EndTime),
			TimeZone: constants.EventTimeZone,
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: req.ConferenceRequestID,
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: constants.ConferenceSolutionHangoutsMeet,
				},
			},
		},
		Attendees: attendees,
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{constants.EventOwnerProperty: constants.EventOwnerValue},
		},
		Reminders: &calendar.EventReminders{
			UseDefault:      false,
			Overrides:       overrides,
			ForceSendFields: []string{"UseDefault"},
		},
		// attendees is sent as [] rather than omitted
		ForceSendFields: []string{"Attendees"},
	}
}

// ToMeetingResult normalizes the insert outcome. It never panics on a partial
// event and always returns a result; err takes precedence over event.
func ToMeetingResult(req dto.MeetingRequest, event *calendar.Event, err error) dto.MeetingResult {
	if err != nil {
		return dto.FailedResult(err)
	}
	if event == nil {
		return dto.MeetingResult{Success: false, Error: "calendar returned an empty event"}
	}

	result := FromCalendarEvent(event)
	if result.Title == "" {
		result.Title = req.Title
	}
	if result.StartTime == "" {
		result.StartTime = formatEventTime(req.StartTime)
	}
	if result.EndTime == "" {
		result.EndTime = formatEventTime(req.EndTime)
	}
	result.DurationMinutes = req.DurationMinutes
	return result
}

// FromCalendarEvent reads the fields the bot reports back to users.
func FromCalendarEvent(event *calendar.Event) dto.MeetingResult {
	result := dto.MeetingResult{
		Success:      true,
		MeetingID:    event.Id,
		MeetLink:     MeetLink(event),
		Title:        event.Summary,
		Description:  event.Description,
		CalendarLink: event.HtmlLink,
	}
	if event.Start != nil {
		result.StartTime = event.Start.DateTime
	}
	if event.End != nil {
		result.EndTime = event.End.DateTime
	}
	if start, errStart := time.Parse(time.RFC3339, result.StartTime); errStart == nil {
		if end, errEnd := time.Parse(time.RFC3339, result.EndTime); errEnd == nil {
			result.DurationMinutes = int(end.Sub(start) / time.Minute)
		}
	}
	return result
}

// IsBotCreated reports whether event carries the owner stamp and the
// conference request id of a meeting created by ToCalendarEvent.
func IsBotCreated(event *calendar.Event) bool {
	if event == nil || event.ExtendedProperties == nil ||
		event.ExtendedProperties.Private[constants.EventOwnerProperty] != constants.EventOwnerValue {
		return false
	}
	if event.ConferenceData == nil || event.ConferenceData.CreateRequest == nil {
		return false
	}
	return strings.HasPrefix(event.ConferenceData.CreateRequest.RequestId, constants.ConferenceRequestIDPrefix)
}

// MeetLink returns the first conference entry point URI, or "" when the event
// carries no conference data.
func MeetLink(event *calendar.Event) string {
	if event == nil || event.ConferenceData == nil || len(event.ConferenceData.EntryPoints) == 0 {
		return ""
	}
	if ep := event.ConferenceData.EntryPoints[0]; ep != nil {
		return ep.Uri
	}
	return ""
}

func formatEventTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
