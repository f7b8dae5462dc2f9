package domain

import "time"

// DateLayout is the storage and flag format for calendar dates.
const DateLayout = "2006-01-02"

// ClockLayout is the normalized naive time-of-day format.
const ClockLayout = "15:04"

// Date builds a civil date at midnight UTC. All calendar dates in the
// system use this representation so that equality and ordering are plain
// time comparisons.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Day strips the clock and zone from t, keeping its wall-clock date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// DateKey formats a civil date for use as a map key or storage value.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays returns d shifted by n calendar days.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// IsWeekday reports whether d falls Monday through Friday.
func IsWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
