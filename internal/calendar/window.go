package calendar

import (
	"time"

	"github.com/cowandilla/clccal/internal/domain"
)

// Window is an inclusive range of civil dates.
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow builds a window from two dates, dropping any clock component.
// A window whose To precedes From is empty.
func NewWindow(from, to time.Time) Window {
	return Window{From: domain.Day(from), To: domain.Day(to)}
}

// Contains reports whether d lies inside the window.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.From) && !d.After(w.To)
}

// Empty reports whether the window contains no days.
func (w Window) Empty() bool {
	return w.To.Before(w.From)
}

// Days lists every date in the window in order.
func (w Window) Days() []time.Time {
	if w.Empty() {
		return nil
	}
	var days []time.Time
	for d := w.From; !d.After(w.To); d = domain.AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// Pad widens the window by n days on each side.
func (w Window) Pad(n int) Window {
	return Window{From: domain.AddDays(w.From, -n), To: domain.AddDays(w.To, n)}
}
