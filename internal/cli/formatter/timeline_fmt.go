package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/service"
)

const (
	labelWidth  = 12
	columnWidth = 2
)

// FormatTimeline renders placements as bars across business-day columns,
// one row per placement, grouped by program.
func FormatTimeline(v *service.TimelineView) string {
	var b strings.Builder
	tl := v.Timeline
	b.WriteString(Header(fmt.Sprintf("Placements %s – %s",
		v.Window.From.Format("2 Jan"), v.Window.To.Format("2 Jan 2006"))) + "\n")

	if len(tl.Columns) == 0 {
		b.WriteString(Dim("No school days in this range.") + "\n")
		b.WriteString(FormatWarnings(v.Warnings))
		return b.String()
	}

	b.WriteString(strings.Repeat(" ", labelWidth) + Dim(weekRuler(tl.Columns)) + "\n")
	b.WriteString(strings.Repeat(" ", labelWidth) + Dim(dayRuler(tl.Columns)) + "\n")

	if len(tl.Groups) == 0 {
		b.WriteString(Dim("No placements in this range.") + "\n")
	}
	for _, g := range tl.Groups {
		b.WriteString("\n" + Badge(g.Accent, g.Program.DisplayName()) + "\n")
		for _, r := range g.Rows {
			b.WriteString(PadRight(Truncate(r.Label, labelWidth-2), labelWidth))
			for _, c := range r.Cells {
				b.WriteString(timelineCell(r, c))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + markerLegend() + "\n")
	b.WriteString(FormatWarnings(v.Warnings))
	return b.String()
}

// weekRuler labels the first column of each week with its date.
func weekRuler(columns []time.Time) string {
	ruler := []rune(strings.Repeat(" ", len(columns)*columnWidth))
	for i, d := range columns {
		if i > 0 && d.Weekday() != time.Monday {
			continue
		}
		label := []rune(d.Format("2 Jan"))
		pos := i * columnWidth
		if pos+len(label) > len(ruler) {
			continue
		}
		copy(ruler[pos:], label)
	}
	return strings.TrimRight(string(ruler), " ")
}

// dayRuler shows each column's weekday initial.
func dayRuler(columns []time.Time) string {
	var b strings.Builder
	for _, d := range columns {
		b.WriteString(PadRight(d.Weekday().String()[:1], columnWidth))
	}
	return b.String()
}

func timelineCell(r calendar.TimelineRow, c calendar.TimelineCell) string {
	switch c.State {
	case calendar.CellBar:
		return AccentStyle(r.Accent).Render(strings.Repeat("█", columnWidth))
	case calendar.CellBarMarkers:
		return barMarkerStyle(r.Accent).Render(markerText(c.Markers))
	case calendar.CellMarkers:
		if len(c.Markers) > 1 {
			return StyleYellow.Render(markerText(c.Markers))
		}
		return markerText(c.Markers)
	default:
		return Dim(PadRight("·", columnWidth))
	}
}

// barMarkerStyle draws a meeting marker on the placement's bar color so it
// reads as part of the bar.
func barMarkerStyle(a domain.Accent) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(a.Background)).
		Background(lipgloss.Color(a.Color))
}

// markerText shows the first meeting of the day, or a count when several
// meetings share the cell.
func markerText(markers []domain.Category) string {
	switch len(markers) {
	case 0:
		return strings.Repeat(" ", columnWidth)
	case 1:
		return domain.CategoryAccent(markers[0]).Glyph
	default:
		return PadRight(strconv.Itoa(min(len(markers), 9))+"+", columnWidth)
	}
}

func markerLegend() string {
	parts := make([]string, 0, len(domain.StudentMeetingCategories))
	for _, c := range domain.StudentMeetingCategories {
		parts = append(parts, domain.CategoryAccent(c).Glyph+" "+string(c))
	}
	return Dim(strings.Join(parts, "  "))
}
