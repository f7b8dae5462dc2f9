package service

import (
	"time"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
)

// DefaultTimelineWeeks is the width of the timeline when no end is given.
const DefaultTimelineWeeks = 12

// DefaultTimelinePadDays is how far before the window placements are
// fetched, so long placements that started earlier still show.
const DefaultTimelinePadDays = 120

// MonthRequest selects a month view. A zero Month means the current month.
type MonthRequest struct {
	Month    calendar.YearMonth
	Selected *time.Time
}

// WeekRequest selects a week view. A zero Start means the current week.
type WeekRequest struct {
	Start    time.Time
	Selected *time.Time
}

// AgendaRequest selects an agenda. From defaults to today and To to the
// configured number of weeks after From.
type AgendaRequest struct {
	From       *time.Time
	To         *time.Time
	Categories []domain.Category
}

// TimelineRequest selects a placement timeline. From defaults to the
// Monday of the current week and To to DefaultTimelineWeeks later.
type TimelineRequest struct {
	From     *time.Time
	To       *time.Time
	Programs []domain.Program
}

// Warnings lists the optional sources that could not be loaded for a view.
type Warnings []string

type MonthView struct {
	Grid     calendar.MonthGrid
	Today    time.Time
	Warnings Warnings
}

type WeekView struct {
	Grid     calendar.WeekGrid
	Today    time.Time
	Warnings Warnings
}

type AgendaView struct {
	Agenda   calendar.Agenda
	Today    time.Time
	Warnings Warnings
}

type TimelineView struct {
	Timeline calendar.Timeline
	Window   calendar.Window
	Warnings Warnings
}

type TransitionsView struct {
	Students []calendar.StudentSchedule
	Warnings Warnings
}

// RecordsView is every record in a window, in agenda order.
type RecordsView struct {
	Window   calendar.Window
	Records  []domain.EventRecord
	Warnings Warnings
}
