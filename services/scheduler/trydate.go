package scheduler

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// tryDatePattern recognizes "try <month> <day>" sub-requests inside a
// datetime answer, e.g. "Try August 10".
var tryDatePattern = regexp.MustCompile(`(?i)\btry\s+([a-zA-Z]+\s+\d{1,2})\b`)

// HandleTryDate answers a "try <month> <day>" availability probe. The second
// return value is false when the message is not such a probe, in which case
// the caller should continue with normal datetime handling.
func (p *Planner) HandleTryDate(ctx context.Context, message string, serviceHours float64) (string, bool, error) {
	m := tryDatePattern.FindStringSubmatch(message)
	if m == nil {
		return "", false, nil
	}
	dateText := strings.TrimSpace(m[1])

	parsed := p.Parser.Parse(dateText, p.now())
	if parsed == nil {
		return "Sorry, I couldn't understand that date. Try a format like 'Try August 5'.", true, nil
	}

	times, err := p.AvailableTimesForDate(ctx, dateText, serviceHours)
	if err != nil {
		return "", true, err
	}
	dayLabel := parsed.In(p.Loc).Format("January 02")
	if len(times) == 0 {
		return fmt.Sprintf("Sorry, there are no available appointment times on %s.", dayLabel), true, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here are the available times for %s:\n\n", dayLabel)
	for _, t := range times {
		fmt.Fprintf(&sb, "🕒 %s\n", t.Format("03:04 PM"))
	}
	sb.WriteString("\nPlease type the full date and time you'd like in this format: MONTH DAY TIME. " +
		"Or, check availability for another day using the same 'Try MONTH DAY' format you just used.")
	return sb.String(), true, nil
}

// FormatSlot renders a slot the way prompts and summaries present times.
func FormatSlot(t time.Time) string {
	return t.Format("January 02 at 03:04 PM")
}
