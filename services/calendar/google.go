package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarService implements Service against the Google Calendar API
// using a service-account credentials file.
type GoogleCalendarService struct {
	svc *gcal.Service
}

// NewGoogleCalendarService builds the API client from a credentials file.
func NewGoogleCalendarService(ctx context.Context, credentialsPath string) (*GoogleCalendarService, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("calendar: create client: %w", err)
	}
	return &GoogleCalendarService{svc: svc}, nil
}

func (g *GoogleCalendarService) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]Event, error) {
	res, err := g.svc.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: list events: %w", err)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		start, err := eventTime(item.Start)
		if err != nil {
			continue
		}
		end, err := eventTime(item.End)
		if err != nil {
			continue
		}
		events = append(events, Event{Start: start, End: end})
	}
	return events, nil
}

func (g *GoogleCalendarService) InsertEvent(ctx context.Context, calendarID string, ev EventInput) (string, error) {
	created, err := g.svc.Events.Insert(calendarID, &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       &gcal.EventDateTime{DateTime: ev.Start.Format(time.RFC3339), TimeZone: ev.Timezone},
		End:         &gcal.EventDateTime{DateTime: ev.End.Format(time.RFC3339), TimeZone: ev.Timezone},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar: insert event: %w", err)
	}
	return created.Id, nil
}

// eventTime handles both timed and all-day events.
func eventTime(edt *gcal.EventDateTime) (time.Time, error) {
	if edt == nil {
		return time.Time{}, fmt.Errorf("calendar: event has no time")
	}
	if edt.DateTime != "" {
		return time.Parse(time.RFC3339, edt.DateTime)
	}
	return time.Parse("2006-01-02", edt.Date)
}
