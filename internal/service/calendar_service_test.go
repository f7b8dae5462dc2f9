package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/repository"
	"github.com/cowandilla/clccal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCalendarService_MonthDegradesWithoutGovernance(t *testing.T) {
	store := &mockRecordStore{}
	store.On("FetchEvents", mock.Anything, mock.Anything, mock.Anything).Return([]domain.EventRow{
		*testutil.NewTestEventRow("Staff briefing", "2026-03-10", testutil.WithEventType("Staff Meeting")),
	}, nil)
	store.On("FetchGovernanceMeetings", mock.Anything).Return(nil, errors.New("no such table: pac_meetings"))

	svc := NewCalendarService(store, CalendarOptions{Now: fixedNow(2026, time.March, 4)})
	view, err := svc.Month(context.Background(), MonthRequest{})
	require.NoError(t, err)

	assert.Equal(t, calendar.YearMonth{Year: 2026, Month: time.March}, view.Grid.Month)
	assert.Equal(t, Warnings{"PAC meetings could not be loaded."}, view.Warnings)
	assert.Equal(t, 31, view.Grid.PopulatedCells())
	total := 0
	for _, week := range view.Grid.Weeks {
		for _, cell := range week {
			total += cell.Total
		}
	}
	assert.Equal(t, 1, total)
	store.AssertExpectations(t)
}

func TestCalendarService_MonthFetchesPaddedWindow(t *testing.T) {
	store := &mockRecordStore{}
	store.On("FetchEvents", mock.Anything,
		mock.MatchedBy(func(from *time.Time) bool { return from.Equal(domain.Date(2026, time.February, 22)) }),
		mock.MatchedBy(func(to *time.Time) bool { return to.Equal(domain.Date(2026, time.April, 7)) }),
	).Return(nil, nil)
	store.On("FetchGovernanceMeetings", mock.Anything).Return(nil, nil)

	svc := NewCalendarService(store, CalendarOptions{Now: fixedNow(2026, time.March, 4)})
	_, err := svc.Month(context.Background(), MonthRequest{Month: calendar.YearMonth{Year: 2026, Month: time.March}})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestCalendarService_EventFailureIsFatal(t *testing.T) {
	store := &mockRecordStore{}
	store.On("FetchEvents", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("database is locked"))

	obs := &recordingObserver{}
	svc := NewCalendarService(store, CalendarOptions{Now: fixedNow(2026, time.March, 4)}, obs)
	_, err := svc.Week(context.Background(), WeekRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching events")

	event := obs.last()
	assert.Equal(t, "week-view", event.Name)
	assert.False(t, event.Success)
	assert.Equal(t, "2026-03-02", event.Fields["week"])
	store.AssertNotCalled(t, "FetchGovernanceMeetings", mock.Anything)
}

func TestCalendarService_TimelineWindowAndPadding(t *testing.T) {
	store := &mockRecordStore{}
	from := domain.Date(2026, time.March, 2)
	to := domain.Date(2026, time.May, 22)
	padFrom := domain.AddDays(from, -DefaultTimelinePadDays)

	store.On("FetchEventsByCategory", mock.Anything, &padFrom, &to,
		[]domain.Category{domain.CategoryStudentPlacement}).
		Return([]domain.EventRow{
			*testutil.NewTestPlacement("J.S.", "Tier 1", "2025-11-10", "2026-03-13"),
			{ID: "bad", Title: "Broken", EventType: "Student Placement", EventDate: "TBC", StudentInitials: "Q.Q."},
		}, nil)
	store.On("FetchEventsByCategory", mock.Anything, &from, &to, domain.StudentMeetingCategories).
		Return([]domain.EventRow{
			*testutil.NewTestEventRow("Review", "2026-03-04", testutil.WithEventType("Review Meeting"), testutil.WithStudent("j.s.", "Tier 1")),
		}, nil)

	svc := NewCalendarService(store, CalendarOptions{Now: fixedNow(2026, time.March, 4)})
	view, err := svc.Timeline(context.Background(), TimelineRequest{})
	require.NoError(t, err)

	assert.Equal(t, from, view.Window.From)
	assert.Equal(t, to, view.Window.To)
	assert.Len(t, view.Timeline.Columns, 60)
	require.Len(t, view.Timeline.Rows(), 1)
	row := view.Timeline.Rows()[0]
	assert.Equal(t, 10, row.BarCells())
	assert.Equal(t, calendar.CellBarMarkers, row.Cells[2].State)
	assert.Equal(t, []string{"1 placement(s) without a valid start date were skipped."}, []string(view.Warnings))
	store.AssertExpectations(t)
}

func TestCalendarService_TimelineTooWide(t *testing.T) {
	store := &mockRecordStore{}
	store.On("FetchEventsByCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	svc := NewCalendarService(store, CalendarOptions{Now: fixedNow(2026, time.March, 4), TimelinePadDays: 30})
	view, err := svc.Timeline(context.Background(), TimelineRequest{
		From: datePtr(2026, time.January, 5),
		To:   datePtr(2026, time.June, 26),
	})
	require.NoError(t, err)
	assert.True(t, view.Timeline.TooWide)
	require.Len(t, view.Warnings, 1)
	assert.Contains(t, view.Warnings[0], "showing the first 60")
}

func TestCalendarService_TransitionsDegrade(t *testing.T) {
	store := &mockRecordStore{}
	store.On("FetchTransitionWeeks", mock.Anything, "").Return(nil, errors.New("no such table: transition_weeks"))

	svc := NewCalendarService(store, CalendarOptions{})
	view, err := svc.Transitions(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, view.Students)
	assert.Equal(t, Warnings{"Transition schedules could not be loaded."}, view.Warnings)
}

func TestCalendarService_AgendaAgainstDatabase(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	events := repository.NewSQLiteEventRepo(database)
	meetings := repository.NewSQLiteGovernanceRepo(database)
	weeks := repository.NewSQLiteTransitionRepo(database)

	require.NoError(t, events.Create(ctx, testutil.NewTestEventRow("Camp", "2026-03-05", testutil.WithEventType("Excursion / Event"))))
	require.NoError(t, events.Create(ctx, testutil.NewTestEventRow("Briefing", "2026-03-05", testutil.WithEventType("Staff Meeting"), testutil.WithTimes("08:15", "08:45"))))
	require.NoError(t, events.Create(ctx, testutil.NewTestEventRow("Far future", "2026-09-01")))
	require.NoError(t, meetings.Create(ctx, testutil.NewTestGovernanceRow("2026-03-05", testutil.WithMeetingTime("18:30"))))

	svc := NewCalendarService(NewRecordStore(events, meetings, weeks), CalendarOptions{Now: fixedNow(2026, time.March, 2)})
	view, err := svc.Agenda(ctx, AgendaRequest{})
	require.NoError(t, err)

	entries := view.Agenda.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Camp", entries[0].Title)
	assert.Equal(t, "Briefing", entries[1].Title)
	assert.Equal(t, domain.CategoryPACMeeting, entries[2].Category)
	assert.True(t, entries[2].IsReadOnly())
	assert.Empty(t, view.Warnings)

	filtered, err := svc.Agenda(ctx, AgendaRequest{Categories: []domain.Category{domain.CategoryStaffMeeting}})
	require.NoError(t, err)
	require.Equal(t, 1, filtered.Agenda.Count)
	assert.Equal(t, "Briefing", filtered.Agenda.Entries()[0].Title)
}

func TestCalendarService_RecordsIncludesUndated(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	events := repository.NewSQLiteEventRepo(database)

	require.NoError(t, events.Create(ctx, testutil.NewTestEventRow("Dated", "2026-03-05")))
	require.NoError(t, events.Create(ctx, testutil.NewTestEventRow("Someday", "TBC")))

	svc := NewCalendarService(NewRecordStore(events,
		repository.NewSQLiteGovernanceRepo(database),
		repository.NewSQLiteTransitionRepo(database)), CalendarOptions{Now: fixedNow(2026, time.March, 2)})
	view, err := svc.Records(ctx, calendar.NewWindow(domain.Date(2026, time.March, 1), domain.Date(2026, time.March, 31)))
	require.NoError(t, err)

	require.Len(t, view.Records, 2)
	assert.Equal(t, "Dated", view.Records[0].Title)
	assert.True(t, view.Records[1].IsUndated())
	assert.Equal(t, "TBC", view.Records[1].RawDate)
}
