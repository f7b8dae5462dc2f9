package calendar

import (
	"fmt"
	"time"

	"github.com/cowandilla/clccal/internal/domain"
)

// FetchPadDays widens a month's store fetch so that records on the padding
// cells of the first and last week are available to the caller.
const FetchPadDays = 7

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d time.Time) YearMonth {
	return YearMonth{Year: d.Year(), Month: d.Month()}
}

// ParseYearMonth parses "2006-01".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return MonthOf(t), nil
}

// Next returns the following month, rolling December into January.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Prev returns the preceding month, rolling January into December.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// First is the first day of the month.
func (ym YearMonth) First() time.Time {
	return domain.Date(ym.Year, ym.Month, 1)
}

// Last is the last day of the month.
func (ym YearMonth) Last() time.Time {
	return domain.AddDays(ym.Next().First(), -1)
}

// DaysIn is the number of days in the month.
func (ym YearMonth) DaysIn() int {
	return ym.Last().Day()
}

// Bounds is the window covering exactly the month.
func (ym YearMonth) Bounds() Window {
	return Window{From: ym.First(), To: ym.Last()}
}

// FetchWindow is the month padded by FetchPadDays on each side.
func (ym YearMonth) FetchWindow() Window {
	return ym.Bounds().Pad(FetchPadDays)
}

// Contains reports whether d falls in the month.
func (ym YearMonth) Contains(d time.Time) bool {
	return d.Year() == ym.Year && d.Month() == ym.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Title is the display heading, e.g. "March 2026".
func (ym YearMonth) Title() string {
	return fmt.Sprintf("%s %d", ym.Month, ym.Year)
}

// WeekStartOf returns the Monday on or before d.
func WeekStartOf(d time.Time) time.Time {
	d = domain.Day(d)
	offset := (int(d.Weekday()) + 6) % 7
	return domain.AddDays(d, -offset)
}

// NextWeek returns the Monday after the week containing d.
func NextWeek(d time.Time) time.Time {
	return domain.AddDays(WeekStartOf(d), 7)
}

// PrevWeek returns the Monday before the week containing d.
func PrevWeek(d time.Time) time.Time {
	return domain.AddDays(WeekStartOf(d), -7)
}

// WeekWindow is the Monday–Sunday window of the week containing d.
func WeekWindow(d time.Time) Window {
	start := WeekStartOf(d)
	return Window{From: start, To: domain.AddDays(start, 6)}
}
