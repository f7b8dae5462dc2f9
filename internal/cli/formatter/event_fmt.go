package formatter

import (
	"fmt"
	"strings"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
)

// FormatEventList renders records as a table, one row each.
func FormatEventList(recs []domain.EventRecord) string {
	headers := []string{"ID", "DATE", "TIME", "CATEGORY", "TITLE", "ADDED BY"}
	rows := make([][]string, 0, len(recs))
	for _, e := range recs {
		rows = append(rows, []string{
			TruncID(e.ID),
			dateSpan(e),
			calendar.FormatTimeRange(e.StartTime, e.EndTime),
			AccentStyle(e.Accent()).Render(string(e.Category)),
			e.Title,
			e.AddedBy,
		})
	}
	return RenderTable(headers, rows)
}

func dateSpan(e domain.EventRecord) string {
	if e.IsUndated() {
		return StyleYellow.Render(Truncate(e.RawDate, 10))
	}
	s := domain.DateKey(e.StartDate)
	if e.IsMultiDay() {
		s += " → " + domain.DateKey(e.End())
	}
	return s
}

// FormatEventDetail renders every populated field of a record in a box.
func FormatEventDetail(e domain.EventRecord) string {
	var lines []string
	field := func(name, value string) {
		if strings.TrimSpace(value) != "" {
			lines = append(lines, fmt.Sprintf("%s %s", Dim(PadRight(name+":", 10)), value))
		}
	}

	when := calendar.FormatDate(e.RawDate)
	if !e.IsUndated() {
		when = calendar.FormatDate(domain.DateKey(e.StartDate))
	}
	if e.IsMultiDay() {
		when += " – " + calendar.FormatDate(domain.DateKey(*e.EndDate))
	}
	if t := calendar.FormatTimeRange(e.StartTime, e.EndTime); t != "" {
		when += ", " + t
	}

	field("Category", Badge(e.Accent(), e.Accent().Glyph+" "+string(e.Category)))
	field("When", when)
	field("Location", e.Location)
	field("Student", e.StudentInitials)
	if e.Program != "" {
		field("Program", string(e.Program))
	}
	field("Notes", e.Notes)
	field("Added by", e.AddedBy)
	field("ID", Dim(e.ID))
	if e.IsReadOnly() {
		lines = append(lines, Dim("Governance meeting (read-only)"))
	}
	return RenderBox(e.Title, strings.Join(lines, "\n"))
}

// FormatLegend lists every category with its glyph and color, then the
// program accents used for student records.
func FormatLegend() string {
	var b strings.Builder
	b.WriteString(Header("Categories") + "\n")
	for _, c := range domain.Categories {
		a := domain.CategoryAccent(c)
		b.WriteString(a.Glyph + " " + AccentStyle(a).Render(string(c)) + "\n")
	}
	b.WriteString("\n" + Header("Programs") + "\n")
	for _, p := range domain.Programs {
		a, _ := domain.ProgramAccent(p)
		b.WriteString(Badge(a, string(p)) + "\n")
	}
	return b.String()
}
