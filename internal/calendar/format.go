package calendar

import (
	"strings"
	"time"

	"github.com/cowandilla/clccal/internal/domain"
)

var clockLayouts = []string{"15:04:05", "15:04", "3:04 PM", "3:04PM", "3PM", "3 PM"}

// ParseDate reads a stored calendar date. Only the leading YYYY-MM-DD part
// is considered, so timestamps stored in date columns still parse.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) > len(domain.DateLayout) {
		raw = raw[:len(domain.DateLayout)]
	}
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseClock reads a naive time of day and returns it as "15:04".
func ParseClock(raw string) (string, bool) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return "", false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(domain.ClockLayout), true
		}
	}
	if len(raw) > 5 {
		if t, err := time.Parse(domain.ClockLayout, raw[:5]); err == nil {
			return t.Format(domain.ClockLayout), true
		}
	}
	return "", false
}

// normalizeClock returns the "15:04" form of raw, or raw itself (trimmed)
// when it cannot be parsed so the record still renders something.
func normalizeClock(raw string) string {
	if clock, ok := ParseClock(raw); ok {
		return clock
	}
	return strings.TrimSpace(raw)
}

// FormatDate renders a stored date as "2 March 2026". Unparseable input is
// shown verbatim (first ten characters); empty input renders as "—".
func FormatDate(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "—"
	}
	if d, ok := ParseDate(raw); ok {
		return d.Format("2 January 2006")
	}
	return truncate(strings.TrimSpace(raw), 10)
}

// FormatDay renders a civil date as an agenda header, e.g. "Monday 2 March 2026".
func FormatDay(d time.Time) string {
	return d.Format("Monday 2 January 2006")
}

// FormatTime renders a stored time as "9:00 AM". Unparseable input is shown
// verbatim (first five characters); empty input renders as "".
func FormatTime(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if clock, ok := ParseClock(raw); ok {
		t, _ := time.Parse(domain.ClockLayout, clock)
		return t.Format("3:04 PM")
	}
	return truncate(strings.TrimSpace(raw), 5)
}

// FormatTimeRange renders "9:00 AM – 10:30 AM", just the start when there is
// no end, and "" when there is no start.
func FormatTimeRange(start, end string) string {
	s := FormatTime(start)
	if s == "" {
		return ""
	}
	if e := FormatTime(end); e != "" {
		return s + " – " + e
	}
	return s
}

// clockMinutes converts a "15:04" value to minutes after midnight.
func clockMinutes(clock string) (int, bool) {
	norm, ok := ParseClock(clock)
	if !ok {
		return 0, false
	}
	t, _ := time.Parse(domain.ClockLayout, norm)
	return t.Hour()*60 + t.Minute(), true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
