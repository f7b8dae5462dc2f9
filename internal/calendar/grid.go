package calendar

import (
	"time"

	"github.com/cowandilla/clccal/internal/domain"
)

// MonthCellLimit is the number of events a month cell lists before
// collapsing the remainder into "+N more".
const MonthCellLimit = 4

// Selection carries the reference dates a grid highlights. Both are
// optional.
type Selection struct {
	Today    *time.Time
	Selected *time.Time
}

// Highlight says how a cell should be emphasized.
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightToday
	HighlightSelected
)

// DayCell is one day in a grid. Padding cells belong to an adjacent month;
// they keep their date for rendering but never hold events.
type DayCell struct {
	Date       time.Time
	Padding    bool
	Events     []domain.EventRecord
	Overflow   int
	Total      int
	IsToday    bool
	IsSelected bool
}

// Highlight resolves the cell's emphasis. Selection wins over today.
func (c DayCell) Highlight() Highlight {
	switch {
	case c.IsSelected:
		return HighlightSelected
	case c.IsToday:
		return HighlightToday
	default:
		return HighlightNone
	}
}

// MonthGrid is a Monday-first month layout.
type MonthGrid struct {
	Month   YearMonth
	Weeks   [][7]DayCell
	Undated []domain.EventRecord
}

// PopulatedCells counts the in-month cells.
func (g MonthGrid) PopulatedCells() int {
	n := 0
	for _, week := range g.Weeks {
		for _, c := range week {
			if !c.Padding {
				n++
			}
		}
	}
	return n
}

// WeekGrid is a Monday–Sunday layout with full, untruncated day lists.
type WeekGrid struct {
	Start   time.Time
	Days    [7]DayCell
	Undated []domain.EventRecord
}

// End is the Sunday of the week.
func (g WeekGrid) End() time.Time {
	return domain.AddDays(g.Start, 6)
}

// BuildMonthGrid lays out ym as whole weeks starting on Monday. In-month
// cells list at most MonthCellLimit events.
func BuildMonthGrid(ym YearMonth, idx DateIndex, sel Selection) MonthGrid {
	grid := MonthGrid{Month: ym, Undated: idx.Undated}

	first := ym.First()
	last := ym.Last()
	start := WeekStartOf(first)
	for weekStart := start; !weekStart.After(last); weekStart = domain.AddDays(weekStart, 7) {
		var week [7]DayCell
		for i := range week {
			d := domain.AddDays(weekStart, i)
			if !ym.Contains(d) {
				week[i] = DayCell{Date: d, Padding: true}
				continue
			}
			week[i] = buildCell(d, idx, sel, MonthCellLimit)
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}

// BuildWeekGrid lays out the Monday–Sunday week containing start.
func BuildWeekGrid(start time.Time, idx DateIndex, sel Selection) WeekGrid {
	monday := WeekStartOf(start)
	grid := WeekGrid{Start: monday, Undated: idx.Undated}
	for i := range grid.Days {
		grid.Days[i] = buildCell(domain.AddDays(monday, i), idx, sel, 0)
	}
	return grid
}

// buildCell fills a cell from the index. limit <= 0 means no truncation.
func buildCell(d time.Time, idx DateIndex, sel Selection, limit int) DayCell {
	events := idx.On(d)
	cell := DayCell{
		Date:       d,
		Total:      len(events),
		IsToday:    sameDay(sel.Today, d),
		IsSelected: sameDay(sel.Selected, d),
	}
	if limit > 0 && len(events) > limit {
		cell.Overflow = len(events) - limit
		events = events[:limit]
	}
	cell.Events = events
	return cell
}

func sameDay(ref *time.Time, d time.Time) bool {
	return ref != nil && domain.Day(*ref).Equal(d)
}
