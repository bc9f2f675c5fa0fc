package calendar

import (
	"context"
	"time"
)

// Event is an existing calendar entry, reduced to its occupancy window.
type Event struct {
	Start time.Time
	End   time.Time
}

// EventInput describes the appointment event to create.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string
}

// Service is the shared-calendar collaborator. Both calls are blocking
// network operations; callers are expected to pass a bounded context.
type Service interface {
	// ListEvents returns all events overlapping the half-open window
	// [timeMin, timeMax) on the given calendar.
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]Event, error)
	// InsertEvent creates an event and returns its ID.
	InsertEvent(ctx context.Context, calendarID string, ev EventInput) (string, error)
}
