package calendar

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/cowandilla/clccal/internal/domain"
)

// MaxTimelineColumns caps the number of business-day columns a timeline
// renders.
const MaxTimelineColumns = 60

// CellState is what a timeline cell shows.
type CellState int

const (
	CellEmpty CellState = iota
	CellBar
	CellBarMarkers
	CellMarkers
)

func (s CellState) String() string {
	switch s {
	case CellBar:
		return "bar"
	case CellBarMarkers:
		return "bar+markers"
	case CellMarkers:
		return "markers"
	default:
		return "empty"
	}
}

// TimelineRequest holds everything BuildTimeline needs. Placements are
// laid out as rows; Meetings are overlaid onto the row of the student with
// matching initials. Programs restricts the output when non-empty.
type TimelineRequest struct {
	From       time.Time
	To         time.Time
	Placements []domain.EventRecord
	Meetings   []domain.EventRecord
	Programs   []domain.Program
}

// TimelineCell is one business day of a row.
type TimelineCell struct {
	Date    time.Time
	State   CellState
	Markers []domain.Category
}

// TimelineRow is a single placement.
type TimelineRow struct {
	ID      string
	Label   string
	Program domain.Program
	Accent  domain.Accent
	Start   time.Time
	End     time.Time
	Cells   []TimelineCell
}

// BarCells counts cells inside the placement span.
func (r TimelineRow) BarCells() int {
	n := 0
	for _, c := range r.Cells {
		if c.State == CellBar || c.State == CellBarMarkers {
			n++
		}
	}
	return n
}

// EmptyCells counts cells with neither bar nor markers.
func (r TimelineRow) EmptyCells() int {
	n := 0
	for _, c := range r.Cells {
		if c.State == CellEmpty {
			n++
		}
	}
	return n
}

// TimelineGroup is the rows of one program.
type TimelineGroup struct {
	Program domain.Program
	Accent  domain.Accent
	Rows    []TimelineRow
}

// Timeline is the placement Gantt view.
type Timeline struct {
	Columns []time.Time
	Groups  []TimelineGroup

	// TooWide is set when the requested range had more than
	// MaxTimelineColumns business days; Columns then holds the first
	// MaxTimelineColumns and RequestedColumns the uncapped count.
	TooWide          bool
	RequestedColumns int

	// Skipped counts placements without a usable start date.
	Skipped int
}

// Rows flattens the groups in display order.
func (t Timeline) Rows() []TimelineRow {
	var out []TimelineRow
	for _, g := range t.Groups {
		out = append(out, g.Rows...)
	}
	return out
}

// BusinessDays lists every Monday–Friday date in [from, to].
func BusinessDays(from, to time.Time) []time.Time {
	var days []time.Time
	for _, d := range NewWindow(from, to).Days() {
		if domain.IsWeekday(d) {
			days = append(days, d)
		}
	}
	return days
}

type meetingKey struct {
	initials string
	date     string
}

func initialsKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// BuildTimeline lays out placements over the business days of the request
// window, grouped by program and overlaid with the students' meetings.
func BuildTimeline(req TimelineRequest) Timeline {
	columns := BusinessDays(req.From, req.To)
	tl := Timeline{RequestedColumns: len(columns)}
	if len(columns) > MaxTimelineColumns {
		columns = columns[:MaxTimelineColumns]
		tl.TooWide = true
	}
	tl.Columns = columns

	meetings := indexMeetings(req.Meetings)

	byProgram := make(map[domain.Program][]TimelineRow)
	for _, p := range req.Placements {
		if p.IsUndated() {
			tl.Skipped++
			continue
		}
		if len(req.Programs) > 0 && !slices.Contains(req.Programs, p.Program) {
			continue
		}
		start, end := placementSpan(p)
		if !coversColumn(start, end, columns) {
			continue
		}
		byProgram[p.Program] = append(byProgram[p.Program], layoutRow(p, start, end, columns, meetings))
	}

	for _, prog := range programOrder(byProgram) {
		rows := byProgram[prog]
		sort.SliceStable(rows, func(i, j int) bool {
			if !rows[i].Start.Equal(rows[j].Start) {
				return rows[i].Start.Before(rows[j].Start)
			}
			return rows[i].Label < rows[j].Label
		})
		accent, ok := domain.ProgramAccent(prog)
		if !ok {
			accent = domain.CategoryAccent(domain.CategoryStudentPlacement)
		}
		tl.Groups = append(tl.Groups, TimelineGroup{Program: prog, Accent: accent, Rows: rows})
	}
	return tl
}

// placementSpan returns the inclusive span of p. An end date before the
// start collapses to the start date.
func placementSpan(p domain.EventRecord) (time.Time, time.Time) {
	start, end := p.StartDate, p.End()
	if end.Before(start) {
		end = start
	}
	return start, end
}

// coversColumn reports whether [start, end] holds at least one column.
// A placement that only touches weekends or lies outside the columns
// would render as an empty row.
func coversColumn(start, end time.Time, columns []time.Time) bool {
	return slices.ContainsFunc(columns, func(d time.Time) bool {
		return !d.Before(start) && !d.After(end)
	})
}

// indexMeetings maps (initials, date) to the meeting categories held that
// day, de-duplicated in order of appearance. Meetings without initials or
// a usable date cannot be matched and are ignored.
func indexMeetings(meetings []domain.EventRecord) map[meetingKey][]domain.Category {
	out := make(map[meetingKey][]domain.Category)
	for _, m := range meetings {
		if !m.Category.IsStudentMeeting() || m.IsUndated() {
			continue
		}
		initials := initialsKey(m.StudentInitials)
		if initials == "" {
			continue
		}
		key := meetingKey{initials: initials, date: domain.DateKey(m.StartDate)}
		if !slices.Contains(out[key], m.Category) {
			out[key] = append(out[key], m.Category)
		}
	}
	return out
}

func layoutRow(p domain.EventRecord, start, end time.Time, columns []time.Time, meetings map[meetingKey][]domain.Category) TimelineRow {
	row := TimelineRow{
		ID:      p.ID,
		Label:   p.Label(),
		Program: p.Program,
		Accent:  p.Accent(),
		Start:   start,
		End:     end,
		Cells:   make([]TimelineCell, len(columns)),
	}
	initials := initialsKey(p.StudentInitials)
	for i, d := range columns {
		cell := TimelineCell{Date: d}
		if initials != "" {
			cell.Markers = slices.Clone(meetings[meetingKey{initials: initials, date: domain.DateKey(d)}])
		}
		inSpan := !d.Before(start) && !d.After(end)
		switch {
		case inSpan && len(cell.Markers) > 0:
			cell.State = CellBarMarkers
		case inSpan:
			cell.State = CellBar
		case len(cell.Markers) > 0:
			cell.State = CellMarkers
		}
		row.Cells[i] = cell
	}
	return row
}

// programOrder lists the programs present: recognized tiers in display
// order, then unrecognized ones by name, then the empty program.
func programOrder(byProgram map[domain.Program][]TimelineRow) []domain.Program {
	var order []domain.Program
	for _, p := range domain.Programs {
		if _, ok := byProgram[p]; ok {
			order = append(order, p)
		}
	}
	var other []domain.Program
	for p := range byProgram {
		if !p.IsKnown() && p != "" {
			other = append(other, p)
		}
	}
	slices.Sort(other)
	order = append(order, other...)
	if _, ok := byProgram[""]; ok {
		order = append(order, "")
	}
	return order
}
