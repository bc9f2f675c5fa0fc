package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday, March 3 2025, 09:00 shop time.
func parserRef() time.Time {
	return time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
}

func TestParseMonthDayTime(t *testing.T) {
	p := NewNaturalDateParser(time.UTC)
	got := p.Parse("August 10 at 2 PM", parserRef())
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, time.August, 10, 14, 0, 0, 0, time.UTC), *got)
}

func TestParseLowercaseWithMinutes(t *testing.T) {
	p := NewNaturalDateParser(time.UTC)
	got := p.Parse("august 10 at 2:30 pm", parserRef())
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, time.August, 10, 14, 30, 0, 0, time.UTC), *got)
}

func TestParsePrefersFuture(t *testing.T) {
	// January has already passed relative to the March reference.
	p := NewNaturalDateParser(time.UTC)
	got := p.Parse("January 5 at 1 PM", parserRef())
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())
}

func TestParseSameDayKept(t *testing.T) {
	p := NewNaturalDateParser(time.UTC)
	got := p.Parse("March 3", parserRef())
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), *got)
}

func TestParseExplicitYear(t *testing.T) {
	p := NewNaturalDateParser(time.UTC)
	got := p.Parse("July 4 2026 at 10 AM", parserRef())
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, time.July, 4, 10, 0, 0, 0, time.UTC), *got)
}

func TestParseOrdinalDay(t *testing.T) {
	p := NewNaturalDateParser(time.UTC)
	got := p.Parse("August 10th at 2 PM", parserRef())
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, time.August, 10, 14, 0, 0, 0, time.UTC), *got)
}

func TestParseDateOnly(t *testing.T) {
	p := NewNaturalDateParser(time.UTC)
	got := p.Parse("August 10", parserRef())
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC), *got)
}

func TestParseGarbage(t *testing.T) {
	p := NewNaturalDateParser(time.UTC)
	assert.Nil(t, p.Parse("whenever works for you I guess", parserRef()))
}
