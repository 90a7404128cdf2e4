package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"slack-meet-bot/core/constants"
	"slack-meet-bot/modules/meeting/dto"
)

var (
	// first match (case-insensitive) decides the duration
	durationPattern = regexp.MustCompile(`(\d+)([hm])`)
	// every lower-case token is stripped from the title, not only the first one
	durationTokenPattern = regexp.MustCompile(`\d+[hm]`)
)

// ParseCommand extracts a title and a duration from free command text such as
// "Team Standup 30m". Values that do not fit in an int32 saturate at
// math.MaxInt32 and are left for the caller to reject.
func ParseCommand(text string) dto.MeetingIntent {
	intent := dto.MeetingIntent{
		Title:           constants.DefaultMeetingTitle,
		DurationMinutes: constants.DefaultMeetingDuration,
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return intent
	}

	if m := durationPattern.FindStringSubmatch(strings.ToLower(text)); m != nil {
		intent.DurationMinutes = toMinutes(m[1], m[2])
		text = strings.TrimSpace(durationTokenPattern.ReplaceAllString(text, ""))
	}

	if text != "" {
		intent.Title = text
	}
	return intent
}

func toMinutes(digits, unit string) int {
	value, err := strconv.Atoi(digits)
	if err != nil || value > math.MaxInt32 {
		return math.MaxInt32
	}
	if unit == "h" {
		if value > math.MaxInt32/60 {
			return math.MaxInt32
		}
		return value * 60
	}
	return value
}
