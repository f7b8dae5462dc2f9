package repository

import (
	"context"
	"testing"

	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEventRepo(db)
	ctx := context.Background()

	ev := testutil.NewTestEventRow("Staff briefing", "2026-03-02",
		testutil.WithEventType(domain.CategoryStaffMeeting),
		testutil.WithTimes("09:00", "10:00"),
		testutil.WithLocation("Library"))
	require.NoError(t, repo.Create(ctx, ev))

	fetched, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, *ev, *fetched)
}

func TestEventRepo_OptionalColumnsReadAsEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEventRepo(db)
	ctx := context.Background()

	ev := testutil.NewTestEventRow("Birthday", "2026-03-05")
	require.NoError(t, repo.Create(ctx, ev))

	fetched, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.EndDate)
	assert.Empty(t, fetched.StartTime)
	assert.Empty(t, fetched.Program)
	assert.Empty(t, fetched.StudentInitials)
}

func TestEventRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEventRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepo_List_OrdersUntimedFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEventRepo(db)
	ctx := context.Background()

	late := testutil.NewTestEventRow("Late", "2026-03-02", testutil.WithTimes("15:00", ""))
	early := testutil.NewTestEventRow("Early", "2026-03-02", testutil.WithTimes("08:00", ""))
	untimed := testutil.NewTestEventRow("Untimed", "2026-03-02")
	next := testutil.NewTestEventRow("Next day", "2026-03-03", testutil.WithTimes("07:00", ""))
	for _, e := range []*domain.EventRow{next, late, early, untimed} {
		require.NoError(t, repo.Create(ctx, e))
	}

	got, err := repo.List(ctx, EventFilter{})
	require.NoError(t, err)
	var titles []string
	for _, e := range got {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"Untimed", "Early", "Late", "Next day"}, titles)
}

func TestEventRepo_List_Filters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEventRepo(db)
	ctx := context.Background()

	rows := []*domain.EventRow{
		testutil.NewTestEventRow("Feb", "2026-02-27", testutil.WithEventType(domain.CategoryStaffMeeting)),
		testutil.NewTestEventRow("Start", "2026-03-01", testutil.WithEventType(domain.CategoryStaffMeeting)),
		testutil.NewTestEventRow("End", "2026-03-31", testutil.WithEventType(domain.CategoryPD)),
		testutil.NewTestEventRow("Apr", "2026-04-01", testutil.WithEventType(domain.CategoryPD)),
		testutil.NewTestPlacement("J.S.", domain.ProgramTier1, "2026-03-09", "2026-03-13"),
		testutil.NewTestEventRow("Review", "2026-03-11",
			testutil.WithEventType(domain.CategoryReviewMeeting), testutil.WithStudent("J.S.", "")),
	}
	for _, e := range rows {
		require.NoError(t, repo.Create(ctx, e))
	}

	from, to := domain.Date(2026, 3, 1), domain.Date(2026, 3, 31)
	inMarch, err := repo.List(ctx, EventFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, inMarch, 4)

	pd, err := repo.List(ctx, EventFilter{Categories: []string{string(domain.CategoryPD)}})
	require.NoError(t, err)
	assert.Len(t, pd, 2)

	student, err := repo.List(ctx, EventFilter{
		From:            &from,
		To:              &to,
		Categories:      []string{string(domain.CategoryStudentPlacement), string(domain.CategoryReviewMeeting)},
		StudentInitials: "j.s.",
	})
	require.NoError(t, err)
	require.Len(t, student, 2)
	assert.Equal(t, "2026-03-09", student[0].EventDate)
}

func TestEventRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEventRepo(db)
	ctx := context.Background()

	ev := testutil.NewTestEventRow("Draft", "2026-03-02")
	require.NoError(t, repo.Create(ctx, ev))

	ev.Title = "Final"
	ev.Notes = "Bring laptops"
	require.NoError(t, repo.Update(ctx, ev))

	fetched, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", fetched.Title)
	assert.Equal(t, "Bring laptops", fetched.Notes)

	require.NoError(t, repo.Delete(ctx, ev.ID))
	_, err = repo.GetByID(ctx, ev.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, ev.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, ev), ErrNotFound)
}

func TestEventRepo_List_IncludeUndated(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEventRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestEventRow("Dated", "2026-03-02")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEventRow("Vague", "early March")))

	from, to := domain.Date(2026, 3, 1), domain.Date(2026, 3, 31)
	strict, err := repo.List(ctx, EventFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, strict, 1)

	lenient, err := repo.List(ctx, EventFilter{From: &from, To: &to, IncludeUndated: true})
	require.NoError(t, err)
	assert.Len(t, lenient, 2)
}
