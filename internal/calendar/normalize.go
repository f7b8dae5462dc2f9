package calendar

import (
	"strings"

	"github.com/cowandilla/clccal/internal/domain"
)

const (
	governanceBody     = "PAC"
	governanceAddedBy  = "PAC System"
	defaultMeetingType = "Ordinary"
)

// NormalizeEvent maps a stored event row onto an EventRecord. Missing
// optional columns become empty values; malformed dates leave StartDate
// zero with RawDate kept for display; unknown categories are preserved.
func NormalizeEvent(row domain.EventRow) domain.EventRecord {
	rec := domain.EventRecord{
		ID:              row.ID,
		Title:           strings.TrimSpace(row.Title),
		Category:        normalizeCategory(row.EventType),
		RawDate:         strings.TrimSpace(row.EventDate),
		StartTime:       normalizeClock(row.StartTime),
		EndTime:         normalizeClock(row.EndTime),
		Location:        strings.TrimSpace(row.Location),
		Notes:           strings.TrimSpace(row.Notes),
		AddedBy:         strings.TrimSpace(row.AddedBy),
		Program:         domain.ParseProgram(row.Program),
		StudentInitials: strings.TrimSpace(row.StudentInitials),
	}
	if d, ok := ParseDate(row.EventDate); ok {
		rec.StartDate = d
	}
	if end, ok := ParseDate(row.EndDate); ok {
		rec.EndDate = &end
	}
	return rec
}

// NormalizeEvents maps rows in order.
func NormalizeEvents(rows []domain.EventRow) []domain.EventRecord {
	out := make([]domain.EventRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, NormalizeEvent(row))
	}
	return out
}

// NormalizeGovernance synthesizes a read-only EventRecord for one governance
// meeting occurrence. ok is false when the row has no meeting date.
func NormalizeGovernance(row domain.GovernanceRow) (domain.EventRecord, bool) {
	if strings.TrimSpace(row.MeetingDate) == "" {
		return domain.EventRecord{}, false
	}
	meetingType := domain.CoalesceStr(strings.TrimSpace(row.MeetingType), defaultMeetingType)
	rec := domain.EventRecord{
		ID:        domain.GovernanceIDPrefix + row.ID,
		Title:     meetingType + " " + governanceBody + " Meeting",
		Category:  domain.CategoryPACMeeting,
		RawDate:   strings.TrimSpace(row.MeetingDate),
		StartTime: normalizeClock(row.StartTime),
		Location:  strings.TrimSpace(row.Location),
		AddedBy:   governanceAddedBy,
		Notes:     "Chair: " + domain.CoalesceStr(strings.TrimSpace(row.Chair), "—"),
	}
	if d, ok := ParseDate(row.MeetingDate); ok {
		rec.StartDate = d
	}
	return rec, true
}

// NormalizeGovernanceRows maps rows in order, skipping undated ones.
func NormalizeGovernanceRows(rows []domain.GovernanceRow) []domain.EventRecord {
	out := make([]domain.EventRecord, 0, len(rows))
	for _, row := range rows {
		if rec, ok := NormalizeGovernance(row); ok {
			out = append(out, rec)
		}
	}
	return out
}

// NormalizeTransition maps a stored transition row onto a TransitionWeek.
// A weekday with neither a start nor an end time is on-site all day.
func NormalizeTransition(row domain.TransitionRow) domain.TransitionWeek {
	w := domain.TransitionWeek{
		ID:              row.ID,
		StudentInitials: strings.TrimSpace(row.StudentInitials),
		Program:         domain.ParseProgram(row.Program),
		Term:            row.Term,
		WeekLabel:       strings.TrimSpace(row.WeekLabel),
		RawWeekStart:    strings.TrimSpace(row.WeekStart),
	}
	if d, ok := ParseDate(row.WeekStart); ok {
		w.WeekStart = d
	}
	for i := range w.Days {
		start, end := strings.TrimSpace(row.DayStart[i]), strings.TrimSpace(row.DayEnd[i])
		if start == "" && end == "" {
			continue
		}
		w.Days[i] = &domain.OffsiteHours{Start: normalizeClock(start), End: normalizeClock(end)}
	}
	return w
}

// NormalizeTransitions maps rows in order.
func NormalizeTransitions(rows []domain.TransitionRow) []domain.TransitionWeek {
	out := make([]domain.TransitionWeek, 0, len(rows))
	for _, row := range rows {
		out = append(out, NormalizeTransition(row))
	}
	return out
}

func normalizeCategory(raw string) domain.Category {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.CategoryOther
	}
	c, _ := domain.ParseCategory(raw)
	return c
}
