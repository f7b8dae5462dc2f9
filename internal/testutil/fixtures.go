package testutil

import (
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/google/uuid"
)

// Event options
type EventOption func(*domain.EventRow)

func WithEventType(c domain.Category) EventOption {
	return func(e *domain.EventRow) {
		e.EventType = string(c)
	}
}

func WithEndDate(d string) EventOption {
	return func(e *domain.EventRow) {
		e.EndDate = d
	}
}

func WithTimes(start, end string) EventOption {
	return func(e *domain.EventRow) {
		e.StartTime = start
		e.EndTime = end
	}
}

func WithLocation(loc string) EventOption {
	return func(e *domain.EventRow) {
		e.Location = loc
	}
}

func WithStudent(initials string, program domain.Program) EventOption {
	return func(e *domain.EventRow) {
		e.StudentInitials = initials
		e.Program = string(program)
	}
}

func WithAddedBy(name string) EventOption {
	return func(e *domain.EventRow) {
		e.AddedBy = name
	}
}

// NewTestEventRow builds an event on date (YYYY-MM-DD). Defaults to an
// untimed "Other" event added by "Test".
func NewTestEventRow(title, date string, opts ...EventOption) *domain.EventRow {
	e := &domain.EventRow{
		ID:        uuid.New().String(),
		Title:     title,
		EventType: string(domain.CategoryOther),
		EventDate: date,
		AddedBy:   "Test",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewTestPlacement builds a Student Placement spanning start..end.
func NewTestPlacement(initials string, program domain.Program, start, end string) *domain.EventRow {
	return NewTestEventRow(initials+" placement", start,
		WithEventType(domain.CategoryStudentPlacement),
		WithEndDate(end),
		WithStudent(initials, program))
}

// Governance options
type GovernanceOption func(*domain.GovernanceRow)

func WithMeetingType(t string) GovernanceOption {
	return func(m *domain.GovernanceRow) {
		m.MeetingType = t
	}
}

func WithChair(name string) GovernanceOption {
	return func(m *domain.GovernanceRow) {
		m.Chair = name
	}
}

func WithMeetingTime(t string) GovernanceOption {
	return func(m *domain.GovernanceRow) {
		m.StartTime = t
	}
}

func NewTestGovernanceRow(date string, opts ...GovernanceOption) *domain.GovernanceRow {
	m := &domain.GovernanceRow{
		ID:          uuid.New().String(),
		MeetingDate: date,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Transition options
type TransitionOption func(*domain.TransitionRow)

func WithOffsite(weekday int, start, end string) TransitionOption {
	return func(w *domain.TransitionRow) {
		w.DayStart[weekday] = start
		w.DayEnd[weekday] = end
	}
}

func WithTerm(term int) TransitionOption {
	return func(w *domain.TransitionRow) {
		w.Term = term
	}
}

func WithTransitionProgram(p domain.Program) TransitionOption {
	return func(w *domain.TransitionRow) {
		w.Program = string(p)
	}
}

// NewTestTransitionRow builds a term 1 week starting on weekStart (a Monday).
func NewTestTransitionRow(initials, weekStart string, opts ...TransitionOption) *domain.TransitionRow {
	w := &domain.TransitionRow{
		ID:              uuid.New().String(),
		StudentInitials: initials,
		Term:            1,
		WeekLabel:       "Week of " + weekStart,
		WeekStart:       weekStart,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}
