package gcal

import (
	"context"
	"net/http"

	"slack-meet-bot/core/errors"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// NewCalendarService builds the typed Calendar v3 client over an authorized
// HTTP client. Extra options (e.g. option.WithEndpoint) are appended.
func NewCalendarService(ctx context.Context, client *http.Client, opts ...option.ClientOption) (*calendar.Service, error) {
	all := append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	svc, err := calendar.NewService(ctx, all...)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCalendarRequest, "failed to create Google Calendar service", err)
	}
	return svc, nil
}
