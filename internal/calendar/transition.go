package calendar

import (
	"slices"
	"sort"
	"strings"

	"github.com/cowandilla/clccal/internal/domain"
)

// TransitionDay is one weekday of a transition week.
type TransitionDay struct {
	Name    string
	Offsite *domain.OffsiteHours
}

// OnSite reports whether the student is on-site all day.
func (d TransitionDay) OnSite() bool {
	return d.Offsite == nil
}

// Describe renders the day for display.
func (d TransitionDay) Describe() string {
	if d.Offsite == nil {
		return "On-site all day"
	}
	if _, ok := ParseClock(d.Offsite.Start); ok {
		return "Off-site " + FormatTimeRange(d.Offsite.Start, d.Offsite.End)
	}
	var parts []string
	for _, s := range []string{d.Offsite.Start, d.Offsite.End} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.TrimSpace("Off-site " + strings.Join(parts, " – "))
}

// TransitionWeekView is a week ready for display.
type TransitionWeekView struct {
	Week domain.TransitionWeek
	Days [5]TransitionDay

	// OffsiteMinutes totals the parseable off-site hours. OffsiteComplete
	// is false when some off-site day could not be measured.
	OffsiteMinutes  int
	OffsiteComplete bool
}

// StudentSchedule is one student's transition weeks.
type StudentSchedule struct {
	StudentInitials string
	Program         domain.Program
	Accent          domain.Accent
	Weeks           []TransitionWeekView
}

// BuildTransitionSchedules groups weeks per student. Students are ordered
// by program display order then initials; weeks by term then week start.
func BuildTransitionSchedules(weeks []domain.TransitionWeek) []StudentSchedule {
	byStudent := make(map[string]*StudentSchedule)
	var keys []string
	for _, w := range weeks {
		key := initialsKey(w.StudentInitials)
		s, ok := byStudent[key]
		if !ok {
			s = &StudentSchedule{StudentInitials: strings.TrimSpace(w.StudentInitials), Program: w.Program}
			byStudent[key] = s
			keys = append(keys, key)
		}
		if s.Program == "" {
			s.Program = w.Program
		}
		s.Weeks = append(s.Weeks, buildWeekView(w))
	}

	out := make([]StudentSchedule, 0, len(keys))
	for _, k := range keys {
		s := byStudent[k]
		s.Accent = domain.ResolveAccent(domain.CategoryTransitionMeeting, s.Program)
		sort.SliceStable(s.Weeks, func(i, j int) bool {
			a, b := s.Weeks[i].Week, s.Weeks[j].Week
			if a.Term != b.Term {
				return a.Term < b.Term
			}
			return a.WeekStart.Before(b.WeekStart)
		})
		out = append(out, *s)
	}
	slices.SortStableFunc(out, func(a, b StudentSchedule) int {
		if ra, rb := a.Program.Rank(), b.Program.Rank(); ra != rb {
			return ra - rb
		}
		if a.Program != b.Program {
			return strings.Compare(string(a.Program), string(b.Program))
		}
		return strings.Compare(a.StudentInitials, b.StudentInitials)
	})
	return out
}

func buildWeekView(w domain.TransitionWeek) TransitionWeekView {
	view := TransitionWeekView{Week: w, OffsiteComplete: true}
	for i, hours := range w.Days {
		view.Days[i] = TransitionDay{Name: domain.WeekdayNames[i], Offsite: hours}
		if hours == nil {
			continue
		}
		start, okStart := clockMinutes(hours.Start)
		end, okEnd := clockMinutes(hours.End)
		if !okStart || !okEnd || end < start {
			view.OffsiteComplete = false
			continue
		}
		view.OffsiteMinutes += end - start
	}
	return view
}
