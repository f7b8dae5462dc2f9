package formatter

import (
	"strconv"
	"strings"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/service"
)

// FormatTransitions renders each student's weekly off-site schedule.
func FormatTransitions(v *service.TransitionsView) string {
	var b strings.Builder
	b.WriteString(Header("Transition schedules") + "\n")
	if len(v.Students) == 0 {
		b.WriteString(Dim("No transition schedules.") + "\n")
	}

	headers := append([]string{"Week", "Term"}, domain.WeekdayNames[:]...)
	headers = append(headers, "Off-site", "ID")

	for _, s := range v.Students {
		b.WriteString("\n" + Bold(s.StudentInitials) + " " + Badge(s.Accent, s.Program.DisplayName()) + "\n")
		rows := make([][]string, 0, len(s.Weeks))
		for _, w := range s.Weeks {
			row := []string{weekLabel(w.Week), strconv.Itoa(w.Week.Term)}
			for _, d := range w.Days {
				row = append(row, dayCell(d))
			}
			total := FormatMinutes(w.OffsiteMinutes)
			if !w.OffsiteComplete {
				total += "*"
			}
			row = append(row, total, TruncID(w.Week.ID))
			rows = append(rows, row)
		}
		b.WriteString(RenderTable(headers, rows))
	}
	b.WriteString(FormatWarnings(v.Warnings))
	return b.String()
}

func weekLabel(w domain.TransitionWeek) string {
	if w.WeekLabel != "" {
		return w.WeekLabel
	}
	return w.RawWeekStart
}

func dayCell(d calendar.TransitionDay) string {
	if d.OnSite() {
		return Dim("on-site")
	}
	return StyleBlue.Render(strings.TrimPrefix(d.Describe(), "Off-site "))
}
