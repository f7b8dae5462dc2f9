package calendar

import (
	"testing"

	"github.com/cowandilla/clccal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEvent(t *testing.T) {
	r := NormalizeEvent(domain.EventRow{
		ID:              "e1",
		Title:           "  Excursion to zoo ",
		EventType:       "excursion / event",
		EventDate:       "2026-03-10",
		EndDate:         "2026-03-11",
		StartTime:       "09:30:00",
		EndTime:         "2:15 pm",
		Program:         "tier 2",
		StudentInitials: " J.S. ",
	})

	assert.Equal(t, "Excursion to zoo", r.Title)
	assert.Equal(t, domain.CategoryExcursion, r.Category)
	assert.Equal(t, day("2026-03-10"), r.StartDate)
	require.NotNil(t, r.EndDate)
	assert.Equal(t, day("2026-03-11"), *r.EndDate)
	assert.Equal(t, "09:30", r.StartTime)
	assert.Equal(t, "14:15", r.EndTime)
	assert.Equal(t, domain.ProgramTier2, r.Program)
	assert.Equal(t, "J.S.", r.StudentInitials)
}

func TestNormalizeEvent_Defaults(t *testing.T) {
	r := NormalizeEvent(domain.EventRow{ID: "e2", EventDate: "garbage", StartTime: "after lunch", EventType: "Fundraiser"})

	assert.True(t, r.IsUndated())
	assert.Equal(t, "garbage", r.RawDate)
	assert.Nil(t, r.EndDate)
	assert.Equal(t, "after lunch", r.StartTime)
	assert.Equal(t, domain.Category("Fundraiser"), r.Category)
	assert.Equal(t, domain.CategoryAccent(domain.CategoryOther), r.Accent())

	empty := NormalizeEvent(domain.EventRow{ID: "e3", EventDate: "2026-03-10"})
	assert.Equal(t, domain.CategoryOther, empty.Category)
	assert.Empty(t, empty.StartTime)
	assert.Empty(t, empty.Program)
}

func TestNormalizeGovernance(t *testing.T) {
	r, ok := NormalizeGovernance(domain.GovernanceRow{
		ID: "12", MeetingDate: "2026-03-02", StartTime: "18:00", Location: "Library", Chair: "R. Patel",
	})
	require.True(t, ok)
	assert.Equal(t, "pac_12", r.ID)
	assert.Equal(t, "Ordinary PAC Meeting", r.Title)
	assert.Equal(t, domain.CategoryPACMeeting, r.Category)
	assert.Equal(t, "PAC System", r.AddedBy)
	assert.Equal(t, "Chair: R. Patel", r.Notes)
	assert.True(t, r.IsReadOnly())

	special, ok := NormalizeGovernance(domain.GovernanceRow{ID: "13", MeetingDate: "2026-04-06", MeetingType: "Special"})
	require.True(t, ok)
	assert.Equal(t, "Special PAC Meeting", special.Title)
	assert.Equal(t, "Chair: —", special.Notes)

	_, ok = NormalizeGovernance(domain.GovernanceRow{ID: "14"})
	assert.False(t, ok)

	rows := NormalizeGovernanceRows([]domain.GovernanceRow{{ID: "1", MeetingDate: "2026-03-02"}, {ID: "2"}})
	assert.Len(t, rows, 1)
}

func TestNormalizeTransition(t *testing.T) {
	row := domain.TransitionRow{
		ID: "t1", StudentInitials: "J.S.", Program: "Tier 1", Term: 2,
		WeekLabel: "Week 3", WeekStart: "2026-05-04",
	}
	row.DayStart[1], row.DayEnd[1] = "9:00 AM", "12:00 PM"
	row.DayStart[3] = "13:00"

	w := NormalizeTransition(row)

	assert.Equal(t, day("2026-05-04"), w.WeekStart)
	assert.Nil(t, w.Days[0])
	require.NotNil(t, w.Days[1])
	assert.Equal(t, domain.OffsiteHours{Start: "09:00", End: "12:00"}, *w.Days[1])
	require.NotNil(t, w.Days[3])
	assert.Equal(t, "", w.Days[3].End)
	assert.Equal(t, 2, w.OffsiteDays())
}
