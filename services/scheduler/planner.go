package scheduler

import (
	"context"
	"fmt"
	"time"

	"shopdesk/services/calendar"
)

// Planner computes and validates appointment slots against shop hours and
// the shared calendar.
//
// Availability checks and the eventual event insertion are not atomic: two
// conversations can both see a slot as free. Callers that insert events must
// re-check availability immediately beforehand; the calendar remains the only
// serialization point.
type Planner struct {
	Calendar   calendar.Service
	CalendarID string
	Loc        *time.Location
	Parser     DateTimeParser
	Now        func() time.Time
}

// NewPlanner wires a planner with a real clock.
func NewPlanner(cal calendar.Service, calendarID string, loc *time.Location, parser DateTimeParser) *Planner {
	return &Planner{
		Calendar:   cal,
		CalendarID: calendarID,
		Loc:        loc,
		Parser:     parser,
		Now:        time.Now,
	}
}

func (p *Planner) now() time.Time {
	return p.Now().In(p.Loc)
}

// IsSlotAvailable reports whether [start, end) is free of calendar conflicts.
func (p *Planner) IsSlotAvailable(ctx context.Context, start, end time.Time) (bool, error) {
	events, err := p.dayEvents(ctx, start, end)
	if err != nil {
		return false, err
	}
	return !overlaps(events, start, end), nil
}

// dayEvents fetches the occupancy windows overlapping [min, max).
func (p *Planner) dayEvents(ctx context.Context, min, max time.Time) ([]eventWindow, error) {
	items, err := p.Calendar.ListEvents(ctx, p.CalendarID, min, max)
	if err != nil {
		return nil, fmt.Errorf("scheduler: list events: %w", err)
	}
	windows := make([]eventWindow, 0, len(items))
	for _, ev := range items {
		windows = append(windows, eventWindow{Start: ev.Start, End: ev.End})
	}
	return windows, nil
}

// FindNextAvailableSlots returns up to count chronologically ordered start
// times within the search horizon that fit shop hours and have no calendar
// conflict. One range query is issued per business day; overlap filtering
// happens locally rather than one calendar call per candidate hour.
func (p *Planner) FindNextAvailableSlots(ctx context.Context, serviceHours float64, count int) ([]time.Time, error) {
	now := p.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), OpeningHour, 0, 0, 0, p.Loc)

	var slots []time.Time
	for d := 0; d < searchHorizonDays && len(slots) < count; d++ {
		day := dayStart.AddDate(0, 0, d)
		if day.Weekday() == time.Sunday {
			continue
		}
		daySlots, err := p.openSlotsForDay(ctx, day, serviceHours, now)
		if err != nil {
			return nil, err
		}
		for _, s := range daySlots {
			slots = append(slots, s)
			if len(slots) == count {
				break
			}
		}
	}
	return slots, nil
}

// openSlotsForDay enumerates the free hourly candidates of a single business
// day. day must be the 10:00 opening instant of that day.
func (p *Planner) openSlotsForDay(ctx context.Context, day time.Time, serviceHours float64, now time.Time) ([]time.Time, error) {
	closing := time.Date(day.Year(), day.Month(), day.Day(), ClosingHour, 0, 0, 0, p.Loc)
	events, err := p.dayEvents(ctx, day, closing)
	if err != nil {
		return nil, err
	}

	var open []time.Time
	for hour := OpeningHour; hour < ClosingHour; hour++ {
		start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, p.Loc)
		end := start.Add(ServiceDuration(serviceHours))
		if start.Before(now) {
			continue
		}
		if !WithinShopHours(start, serviceHours) {
			continue
		}
		if overlaps(events, start, end) {
			continue
		}
		open = append(open, start)
	}
	return open, nil
}

// ParseDateTime resolves a customer-supplied date/time against the planner's
// clock and timezone. Nil means unparseable.
func (p *Planner) ParseDateTime(text string) *time.Time {
	return p.Parser.Parse(text, p.now())
}

// AvailableTimesForDate returns every free future hourly start on the day
// described by dateText. Sundays and unparseable input yield an empty result.
func (p *Planner) AvailableTimesForDate(ctx context.Context, dateText string, serviceHours float64) ([]time.Time, error) {
	now := p.now()
	parsed := p.Parser.Parse(dateText, now)
	if parsed == nil {
		return nil, nil
	}
	local := parsed.In(p.Loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), OpeningHour, 0, 0, 0, p.Loc)
	if day.Weekday() == time.Sunday {
		return nil, nil
	}
	slots, err := p.openSlotsForDay(ctx, day, serviceHours, now)
	if err != nil {
		return nil, err
	}
	// Strictly future starts only for a named day.
	var future []time.Time
	for _, s := range slots {
		if s.After(now) {
			future = append(future, s)
		}
	}
	return future, nil
}
