package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/service"
)

// CellWidth is the visible width of one month grid column.
const CellWidth = 16

var weekdayHeaders = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// FormatMonth renders a month grid: a header row of weekday names, then
// one block of lines per week with each cell's day number and chips.
func FormatMonth(v *service.MonthView) string {
	var b strings.Builder
	b.WriteString(Header(v.Grid.Month.Title()) + "\n")

	for _, name := range weekdayHeaders {
		b.WriteString(PadRight(StyleDim.Render(name), CellWidth))
	}
	b.WriteString("\n")

	rule := StyleDim.Render(strings.Repeat("─", CellWidth*7))
	for _, week := range v.Grid.Weeks {
		lines := 1
		for _, c := range week {
			lines = max(lines, cellLines(c))
		}
		for i := 0; i < lines; i++ {
			var line strings.Builder
			for _, c := range week {
				line.WriteString(PadRight(cellLine(c, i), CellWidth))
			}
			b.WriteString(strings.TrimRight(line.String(), " ") + "\n")
		}
		b.WriteString(rule + "\n")
	}

	b.WriteString(formatUndated(v.Grid.Undated))
	b.WriteString(FormatWarnings(v.Warnings))
	return b.String()
}

func cellLines(c calendar.DayCell) int {
	n := 1 + len(c.Events)
	if c.Overflow > 0 {
		n++
	}
	return n
}

func cellLine(c calendar.DayCell, i int) string {
	if i == 0 {
		return dayNumber(c)
	}
	switch {
	case i-1 < len(c.Events):
		return Chip(c.Events[i-1], CellWidth-1)
	case i-1 == len(c.Events) && c.Overflow > 0:
		return Dim(fmt.Sprintf("+%d more", c.Overflow))
	}
	return ""
}

func dayNumber(c calendar.DayCell) string {
	n := fmt.Sprintf("%2d", c.Date.Day())
	switch {
	case c.Padding:
		return Dim(n)
	case c.Highlight() == calendar.HighlightSelected:
		return StyleSelected.Render(n)
	case c.Highlight() == calendar.HighlightToday:
		return StyleToday.Render(n)
	}
	return Bold(n)
}

// Chip renders a record as its glyph and compact label, colored by accent
// and cut to fit width.
func Chip(e domain.EventRecord, width int) string {
	a := e.Accent()
	label := Truncate(e.Label(), width-3)
	return AccentStyle(a).Render(a.Glyph + " " + label)
}

// FormatWeek renders the seven days of a week as stacked day sections.
func FormatWeek(v *service.WeekView) string {
	var b strings.Builder
	end := v.Grid.End()
	b.WriteString(Header(fmt.Sprintf("Week of %s – %s",
		v.Grid.Start.Format("2 January"), end.Format("2 January 2006"))) + "\n")

	for _, c := range v.Grid.Days {
		b.WriteString("\n" + dayTitle(c.Date, c.IsToday, c.IsSelected) + "\n")
		if len(c.Events) == 0 {
			b.WriteString("  " + Dim("No events") + "\n")
			continue
		}
		for _, e := range c.Events {
			b.WriteString(EntryLine(e) + "\n")
		}
	}

	b.WriteString(formatUndated(v.Grid.Undated))
	b.WriteString(FormatWarnings(v.Warnings))
	return b.String()
}

func dayTitle(d time.Time, today, selected bool) string {
	title := Bold(d.Format("Monday 2 January"))
	if selected {
		title = StyleSelected.Render(d.Format("Monday 2 January"))
	}
	if today {
		title += " " + StyleToday.Render("TODAY")
	}
	return title
}

// EntryLine is one record in a list: time column, chip, then the span,
// location and student details that apply.
func EntryLine(e domain.EventRecord) string {
	when := calendar.FormatTimeRange(e.StartTime, e.EndTime)
	if when == "" {
		when = "All day"
	}
	a := e.Accent()
	line := "  " + PadRight(Dim(when), 20) + AccentStyle(a).Render(a.Glyph+" "+e.Title)

	var extra []string
	if e.IsMultiDay() {
		extra = append(extra, fmt.Sprintf("until %s", e.End().Format("2 Jan")))
	}
	if e.Location != "" {
		extra = append(extra, "@ "+e.Location)
	}
	if e.StudentInitials != "" && !strings.Contains(e.Title, e.StudentInitials) {
		extra = append(extra, e.StudentInitials)
	}
	if len(extra) > 0 {
		line += "  " + Dim(strings.Join(extra, " · "))
	}
	return line
}

func formatUndated(recs []domain.EventRecord) string {
	if len(recs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf("Undated (%d)", len(recs))) + "\n")
	for _, e := range recs {
		b.WriteString(EntryLine(e) + "  " + Dim(fmt.Sprintf("[date: %q]", e.RawDate)) + "\n")
	}
	return b.String()
}

// FormatAgenda renders agenda groups under their day headers.
func FormatAgenda(v *service.AgendaView) string {
	var b strings.Builder
	w := v.Agenda.Window
	b.WriteString(Header(fmt.Sprintf("Agenda %s – %s",
		w.From.Format("2 Jan"), w.To.Format("2 Jan 2006"))) + "\n")

	if v.Agenda.Count == 0 {
		b.WriteString(Dim("No events in this range.") + "\n")
	}
	for _, g := range v.Agenda.Groups {
		header := Bold(g.Header)
		if g.Undated {
			header = StyleYellow.Render(g.Header)
		}
		if g.IsToday {
			header += " " + StyleToday.Render("TODAY")
		}
		b.WriteString("\n" + header + "\n")
		for _, e := range g.Entries {
			b.WriteString(EntryLine(e) + "\n")
		}
	}
	b.WriteString(FormatWarnings(v.Warnings))
	return b.String()
}
