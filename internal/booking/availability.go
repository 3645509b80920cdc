package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/worker"
)

// Window is a worker's bookable interval on one calendar day.
type Window struct {
	Weekday time.Weekday
	From    worker.Clock
	To      worker.Clock
}

// WindowFor returns the availability window matching date's weekday.
// ok is false when the worker does not work that day; this is a normal outcome.
func WindowFor(availability []worker.AvailabilityWindow, date time.Time) (w Window, ok bool) {
	wd := date.Weekday()
	for _, a := range availability {
		if a.Weekday == wd {
			return Window{Weekday: wd, From: a.From, To: a.To}, true
		}
	}
	return Window{Weekday: wd}, false
}

// Slots enumerates one-hour slot starts for every hour in [From.Hour, To.Hour).
// Minutes are ignored, so a partial trailing hour is dropped.
func (w Window) Slots() []string {
	slots := make([]string, 0, max(w.To.Hour-w.From.Hour, 0))
	for h := w.From.Hour; h < w.To.Hour; h++ {
		slots = append(slots, FormatSlot(h))
	}
	return slots
}

// Contains reports whether slot is one of the window's slots.
func (w Window) Contains(slot string) bool {
	h, err := ParseTimeSlot(slot)
	if err != nil {
		return false
	}
	return h >= w.From.Hour && h < w.To.Hour
}

func FormatSlot(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// ParseTimeSlot parses an hour-aligned "HH:00" slot and returns its hour.
func ParseTimeSlot(s string) (int, error) {
	if len(s) != 5 || !strings.HasSuffix(s, ":00") {
		return 0, ErrInvalidTimeSlot
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeSlot
	}
	return t.Hour(), nil
}

// ParseDate reads a calendar day as YYYY-MM-DD, or as an RFC3339 instant
// reduced to its date in loc. The result is midnight UTC of that day.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return dateOf(t, loc), nil
}

// dateOf truncates t to midnight UTC of its calendar day in loc.
func dateOf(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
