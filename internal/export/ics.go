package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/service"
)

const (
	ProductID    = "-//CLC//clccal//EN"
	CalendarName = "CLC Calendar"
	uidDomain    = "clccal"

	icsDateTime = "20060102T150405"
)

// RecordSource is the part of the calendar service an export needs.
type RecordSource interface {
	Records(ctx context.Context, window calendar.Window) (*service.RecordsView, error)
}

// Result reports what an export wrote.
type Result struct {
	Window   calendar.Window
	Written  int
	Skipped  int
	Warnings service.Warnings
}

// SnapshotWindow is the range a scheduled export covers around today.
func SnapshotWindow(today time.Time, weeksBack, weeksAhead int) calendar.Window {
	today = domain.Day(today)
	return calendar.NewWindow(domain.AddDays(today, -7*weeksBack), domain.AddDays(today, 7*weeksAhead))
}

// BuildCalendar turns records into a VCALENDAR. Undated records cannot be
// placed and are counted in skipped. Times are naive wall-clock values and
// are written as floating DATE-TIMEs; untimed records become all-day
// events with an exclusive end date.
func BuildCalendar(records []domain.EventRecord, stamp time.Time) (cal *ics.Calendar, skipped int) {
	cal = ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(CalendarName)

	for _, rec := range records {
		if rec.IsUndated() {
			skipped++
			continue
		}
		addEvent(cal, rec, stamp.UTC())
	}
	return cal, skipped
}

func addEvent(cal *ics.Calendar, rec domain.EventRecord, stamp time.Time) {
	ev := cal.AddEvent(rec.ID + "@" + uidDomain)
	ev.SetDtStampTime(stamp)
	ev.SetSummary(summary(rec))
	ev.SetProperty(ics.ComponentPropertyCategories, string(rec.Category))
	if rec.Location != "" {
		ev.SetLocation(rec.Location)
	}
	if desc := description(rec); desc != "" {
		ev.SetDescription(desc)
	}

	startClock, timed := calendar.ParseClock(rec.StartTime)
	if !timed {
		ev.SetAllDayStartAt(rec.StartDate)
		ev.SetAllDayEndAt(domain.AddDays(rec.End(), 1))
		return
	}
	ev.SetProperty(ics.ComponentPropertyDtStart, atClock(rec.StartDate, startClock).Format(icsDateTime))
	if endClock, ok := calendar.ParseClock(rec.EndTime); ok {
		ev.SetProperty(ics.ComponentPropertyDtEnd, atClock(rec.End(), endClock).Format(icsDateTime))
	}
}

func summary(rec domain.EventRecord) string {
	if rec.StudentInitials == "" || strings.Contains(rec.Title, rec.StudentInitials) {
		return rec.Title
	}
	return rec.StudentInitials + " " + rec.Title
}

func description(rec domain.EventRecord) string {
	var lines []string
	if rec.Notes != "" {
		lines = append(lines, rec.Notes)
	}
	if rec.Program != "" {
		lines = append(lines, "Program: "+string(rec.Program))
	}
	if rec.AddedBy != "" {
		lines = append(lines, "Added by: "+rec.AddedBy)
	}
	return strings.Join(lines, "\n")
}

func atClock(day time.Time, clock string) time.Time {
	t, _ := time.Parse(domain.ClockLayout, clock)
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}

// Write serializes records as an ICS document to w.
func Write(w io.Writer, records []domain.EventRecord, stamp time.Time) (written, skipped int, err error) {
	cal, skipped := BuildCalendar(records, stamp)
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return 0, 0, fmt.Errorf("writing calendar: %w", err)
	}
	return len(records) - skipped, skipped, nil
}

// Snapshot exports every record in window to path, replacing the file
// atomically.
func Snapshot(ctx context.Context, src RecordSource, window calendar.Window, path string, stamp time.Time) (*Result, error) {
	view, err := src.Records(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("collecting records: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".clccal-export-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating export file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	written, skipped, err := Write(tmp, view.Records, stamp)
	if err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing export file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return nil, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return nil, fmt.Errorf("replacing %s: %w", path, err)
	}
	return &Result{Window: window, Written: written, Skipped: skipped, Warnings: view.Warnings}, nil
}
