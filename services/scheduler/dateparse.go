package scheduler

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DateTimeParser resolves natural-language date/time text relative to a
// reference instant. A nil result means the text was not parseable.
type DateTimeParser interface {
	Parse(text string, ref time.Time) *time.Time
}

// NaturalDateParser parses customer-supplied dates with a preference for
// future interpretations. It combines the `when` rule engine (relative
// phrases like "tomorrow at 2pm") with explicit MONTH DAY [at] TIME layouts,
// which is the format the booking prompts ask for.
type NaturalDateParser struct {
	Loc *time.Location
	w   *when.Parser
}

// NewNaturalDateParser builds a parser anchored to the shop timezone.
func NewNaturalDateParser(loc *time.Location) *NaturalDateParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &NaturalDateParser{Loc: loc, w: w}
}

// Layouts tried against normalized (uppercased, comma-stripped) input. Month
// names match case-insensitively; AM/PM must be uppercase, hence the
// normalization.
var explicitLayouts = []string{
	"January 2 2006 AT 3:04 PM",
	"January 2 2006 AT 3 PM",
	"January 2 2006 3:04 PM",
	"January 2 2006 3 PM",
	"January 2 2006 15:04",
	"January 2 2006",
	"January 2 AT 3:04 PM",
	"January 2 AT 3 PM",
	"January 2 AT 15:04",
	"January 2 3:04 PM",
	"January 2 3 PM",
	"January 2 15:04",
	"January 2",
}

var ordinalSuffix = regexp.MustCompile(`(\d{1,2})(ST|ND|RD|TH)\b`)
var multiSpace = regexp.MustCompile(`\s+`)

func normalize(text string) string {
	s := strings.ToUpper(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, ",", " ")
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	return multiSpace.ReplaceAllString(s, " ")
}

// Parse returns the parsed instant in the shop timezone, or nil.
func (p *NaturalDateParser) Parse(text string, ref time.Time) *time.Time {
	ref = ref.In(p.Loc)
	norm := normalize(text)

	for _, layout := range explicitLayouts {
		t, err := time.ParseInLocation(layout, norm, p.Loc)
		if err != nil {
			continue
		}
		hadYear := strings.Contains(layout, "2006")
		if !hadYear {
			t = time.Date(ref.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, p.Loc)
			t = preferFuture(t, ref)
		}
		return &t
	}

	if r, err := p.w.Parse(text, ref); err == nil && r != nil {
		t := r.Time.In(p.Loc)
		return &t
	}
	return nil
}

// preferFuture rolls a year-less date forward one year when it has already
// passed. A result on the reference day still means "today" and is kept as-is.
func preferFuture(t, ref time.Time) time.Time {
	if !t.Before(ref) {
		return t
	}
	sameDay := t.Year() == ref.Year() && t.YearDay() == ref.YearDay()
	if sameDay {
		return t
	}
	return t.AddDate(1, 0, 0)
}
