package dto

import "time"

// ===================== Domain DTOs =====================

// MeetingIntent is what the user asked for, as parsed from the command text.
type MeetingIntent struct {
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
	Description     string `json:"description"`
}

// Reminder is a calendar reminder override.
type Reminder struct {
	Method        string `json:"method"` // email | popup
	MinutesBefore int    `json:"minutes_before"`
}

// MeetingRequest is the provider-agnostic event built for one invocation.
type MeetingRequest struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             time.Time  `json:"end_time"`
	DurationMinutes     int        `json:"duration_minutes"`
	ConferenceRequestID string     `json:"conference_request_id"`
	Reminders           []Reminder `json:"reminders"`
	Attendees           []string   `json:"attendees"`
}

// ===================== Response DTOs =====================

// MeetingResult is the normalized outcome of a calendar call.
// Error is set if and only if Success is false.
type MeetingResult struct {
	Success         bool   `json:"success"`
	MeetingID       string `json:"meeting_id,omitempty"`
	MeetLink        string `json:"meet_link,omitempty"`
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	StartTime       string `json:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	CalendarLink    string `json:"calendar_link,omitempty"`
	Error           string `json:"error,omitempty"`
}

func FailedResult(err error) MeetingResult {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return MeetingResult{Success: false, Error: msg}
}
