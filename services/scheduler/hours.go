package scheduler

import "time"

// Shop hours: Monday through Saturday, 10:00 to 18:00 local time. An
// appointment must fit entirely inside the window.
const (
	OpeningHour = 10
	ClosingHour = 18
)

// searchHorizonDays bounds how far ahead slot suggestions look.
const searchHorizonDays = 30

// ServiceDuration converts catalog hours (possibly fractional) to a duration.
func ServiceDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

// WithinShopHours reports whether an appointment starting at start and
// lasting serviceHours fits the shop's operating window. Sundays are closed.
// An appointment ending exactly at closing time is allowed.
func WithinShopHours(start time.Time, serviceHours float64) bool {
	if start.Weekday() == time.Sunday {
		return false
	}
	if start.Hour() < OpeningHour {
		return false
	}
	end := start.Add(ServiceDuration(serviceHours))
	if end.Hour() > ClosingHour || (end.Hour() == ClosingHour && end.Minute() > 0) {
		return false
	}
	return true
}

// overlaps reports whether [start, end) intersects any of the events.
func overlaps(events []eventWindow, start, end time.Time) bool {
	for _, ev := range events {
		if start.Before(ev.End) && end.After(ev.Start) {
			return true
		}
	}
	return false
}

type eventWindow struct {
	Start time.Time
	End   time.Time
}
