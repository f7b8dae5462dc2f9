package calendar

import (
	"slices"
	"sort"
	"time"

	"github.com/cowandilla/clccal/internal/domain"
)

// DefaultAgendaWeeks is how far ahead the agenda looks when no end date is
// given.
const DefaultAgendaWeeks = 8

// CategoryFilter is a set of admitted categories. The empty filter admits
// everything.
type CategoryFilter []domain.Category

// Allows reports whether c passes the filter.
func (f CategoryFilter) Allows(c domain.Category) bool {
	return len(f) == 0 || slices.Contains(f, c)
}

// AgendaGroup is the run of entries sharing one date. Undated groups hold
// records whose date could not be parsed; their Header is the raw text.
type AgendaGroup struct {
	Date    time.Time
	Header  string
	IsToday bool
	Undated bool
	Entries []domain.EventRecord
}

// Agenda is a chronological list of entries grouped by date.
type Agenda struct {
	Window Window
	Groups []AgendaGroup
	Count  int
}

// Entries flattens the groups in order.
func (a Agenda) Entries() []domain.EventRecord {
	out := make([]domain.EventRecord, 0, a.Count)
	for _, g := range a.Groups {
		out = append(out, g.Entries...)
	}
	return out
}

// Boundaries lists the positions in Entries() where a new date begins,
// always starting at 0 for a non-empty agenda.
func (a Agenda) Boundaries() []int {
	var out []int
	pos := 0
	for _, g := range a.Groups {
		out = append(out, pos)
		pos += len(g.Entries)
	}
	return out
}

// DefaultAgendaWindow runs from today through the given number of weeks.
func DefaultAgendaWindow(today time.Time, weeks int) Window {
	if weeks <= 0 {
		weeks = DefaultAgendaWeeks
	}
	today = domain.Day(today)
	return Window{From: today, To: domain.AddDays(today, weeks*7)}
}

// BuildAgenda lists the records in window that pass filter, ordered by date
// then start time. Untimed records sort before timed ones on the same day.
// Undated records that pass the filter trail as their own groups.
func BuildAgenda(idx DateIndex, window Window, filter CategoryFilter, today time.Time) Agenda {
	agenda := Agenda{Window: window}
	today = domain.Day(today)

	var entries []domain.EventRecord
	dated := idx.Restrict(window)
	for _, d := range dated.Dates() {
		for _, rec := range dated.On(d) {
			if filter.Allows(rec.Category) {
				entries = append(entries, rec)
			}
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		return a.StartTime < b.StartTime
	})

	for _, rec := range entries {
		n := len(agenda.Groups)
		if n > 0 && agenda.Groups[n-1].Date.Equal(rec.StartDate) {
			agenda.Groups[n-1].Entries = append(agenda.Groups[n-1].Entries, rec)
			continue
		}
		agenda.Groups = append(agenda.Groups, AgendaGroup{
			Date:    rec.StartDate,
			Header:  FormatDay(rec.StartDate),
			IsToday: rec.StartDate.Equal(today),
			Entries: []domain.EventRecord{rec},
		})
	}
	agenda.Count = len(entries)

	for _, rec := range idx.Undated {
		if !filter.Allows(rec.Category) {
			continue
		}
		header := FormatDate(rec.RawDate)
		n := len(agenda.Groups)
		if n > 0 && agenda.Groups[n-1].Undated && agenda.Groups[n-1].Header == header {
			agenda.Groups[n-1].Entries = append(agenda.Groups[n-1].Entries, rec)
		} else {
			agenda.Groups = append(agenda.Groups, AgendaGroup{
				Header:  header,
				Undated: true,
				Entries: []domain.EventRecord{rec},
			})
		}
		agenda.Count++
	}
	return agenda
}
