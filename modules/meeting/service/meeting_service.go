package service

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"slack-meet-bot/core/config"
	"slack-meet-bot/core/errors"
	"slack-meet-bot/core/logger"
	"slack-meet-bot/core/metrics"
	"slack-meet-bot/modules/meeting/dto"
	"slack-meet-bot/modules/meeting/mapper"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

// MeetingServiceInterface defines the service contract
type MeetingServiceInterface interface {
	CreateMeeting(ctx context.Context, intent dto.MeetingIntent) dto.MeetingResult
	GetMeeting(ctx context.Context, meetingID string) (*dto.MeetingResult, *errors.AppError)
}

// MeetingService creates instant Meet-enabled events on one calendar.
// It holds no per-invocation state and is safe for concurrent use.
type MeetingService struct {
	calendar   *calendar.Service
	calendarID string
	timeout    time.Duration
	now        func() time.Time
}

func NewMeetingService(calendarSvc *calendar.Service, cfg *config.Config) *MeetingService {
	return &MeetingService{
		calendar:   calendarSvc,
		calendarID: cfg.GoogleAPI.CalendarID,
		timeout:    cfg.GoogleAPI.Timeout,
		now:        time.Now,
	}
}

// CreateMeeting performs exactly one events.insert call with conference data
// generation enabled. Failures come back as an unsuccessful result, never as a
// returned error.
func (s *MeetingService) CreateMeeting(ctx context.Context, intent dto.MeetingIntent) dto.MeetingResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := BuildMeetingRequest(intent, s.now())

	started := time.Now()
	event, err := s.calendar.Events.Insert(s.calendarID, mapper.ToCalendarEvent(req)).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	metrics.RecordCalendarDuration(time.Since(started).Seconds())

	if err != nil {
		logCalendarError("MeetingService:CreateMeeting", err, "title", req.Title, "request_id", req.ConferenceRequestID)
	}

	result := mapper.ToMeetingResult(req, event, err)
	if !result.Success {
		metrics.RecordMeeting(metrics.StatusFailed)
		return result
	}

	metrics.RecordMeeting(metrics.StatusSuccess)
	logger.Info("MeetingService:CreateMeeting:Success",
		"meeting_id", result.MeetingID,
		"title", result.Title,
		"duration_minutes", result.DurationMinutes,
		"has_meet_link", result.MeetLink != "",
	)
	return result
}

// GetMeeting looks up an event previously created by the bot. Events without
// the bot's owner stamp are reported as not found.
func (s *MeetingService) GetMeeting(ctx context.Context, meetingID string) (*dto.MeetingResult, *errors.AppError) {
	if meetingID == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "meeting id is required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	event, err := s.calendar.Events.Get(s.calendarID, meetingID).Context(ctx).Do()
	if err != nil {
		logCalendarError("MeetingService:GetMeeting", err, "meeting_id", meetingID)

		var apiErr *googleapi.Error
		if stderrors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
			return nil, errors.NewAppError(errors.ErrNotFound, "meeting not found", err)
		}
		return nil, errors.NewAppError(errors.ErrCalendarAPI, err.Error(), err)
	}

	// the calendar may hold events the bot did not create; those are not exposed
	if !mapper.IsBotCreated(event) {
		logger.Warn("MeetingService:GetMeeting:ForeignEvent", "meeting_id", meetingID)
		return nil, errors.NewAppError(errors.ErrNotFound, "meeting not found", nil)
	}

	result := mapper.FromCalendarEvent(event)
	return &result, nil
}

// logCalendarError separates provider-side API errors from everything else
// (transport failures, timeouts). Both are handled the same way by callers.
func logCalendarError(op string, err error, args ...any) {
	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		logger.Error(op+":APIError", append([]any{"status", apiErr.Code, "error", err}, args...)...)
		return
	}
	logger.Error(op+":UnexpectedError", append([]any{"error", err}, args...)...)
}
