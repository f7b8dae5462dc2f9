package calendar

import (
	"testing"

	"github.com/cowandilla/clccal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placement(id, start, end, initials string, p domain.Program) domain.EventRecord {
	return rec(id, start, withCategory(domain.CategoryStudentPlacement), withEnd(end), withStudent(initials, p))
}

func meeting(id, date, initials string, c domain.Category) domain.EventRecord {
	return rec(id, date, withCategory(c), withStudent(initials, ""))
}

func TestBuildTimeline_FullWeekBar(t *testing.T) {
	tl := BuildTimeline(TimelineRequest{
		From:       day("2026-02-02"),
		To:         day("2026-02-06"),
		Placements: []domain.EventRecord{placement("p1", "2026-02-02", "2026-02-06", "J.S.", domain.ProgramTier1)},
	})

	require.Len(t, tl.Columns, 5)
	rows := tl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].BarCells())
	assert.Equal(t, 0, rows[0].EmptyCells())
	assert.Equal(t, "J.S.", rows[0].Label)
	assert.False(t, tl.TooWide)
}

func TestBuildTimeline_MeetingOverlay(t *testing.T) {
	tl := BuildTimeline(TimelineRequest{
		From:       day("2026-02-02"),
		To:         day("2026-02-13"),
		Placements: []domain.EventRecord{placement("p1", "2026-02-02", "2026-02-06", "J.S.", domain.ProgramTier2)},
		Meetings: []domain.EventRecord{
			meeting("m1", "2026-02-04", "j.s.", domain.CategoryReviewMeeting),
			meeting("m2", "2026-02-04", "J.S.", domain.CategoryReviewMeeting),
			meeting("m3", "2026-02-10", "J.S.", domain.CategoryTACMeeting),
			meeting("other", "2026-02-05", "A.B.", domain.CategoryEntryMeeting),
			rec("staff", "2026-02-05", withCategory(domain.CategoryStaffMeeting), withStudent("J.S.", "")),
		},
	})

	rows := tl.Rows()
	require.Len(t, rows, 1)
	cells := rows[0].Cells
	require.Len(t, cells, 10)

	assert.Equal(t, CellBar, cells[0].State)
	assert.Equal(t, CellBarMarkers, cells[2].State)
	assert.Equal(t, []domain.Category{domain.CategoryReviewMeeting}, cells[2].Markers)
	assert.Equal(t, CellBar, cells[3].State)
	assert.Equal(t, CellEmpty, cells[5].State)
	assert.Equal(t, day("2026-02-10"), cells[6].Date)
	assert.Equal(t, CellMarkers, cells[6].State)
	assert.Equal(t, []domain.Category{domain.CategoryTACMeeting}, cells[6].Markers)
}

func TestBuildTimeline_GroupsByProgramOrder(t *testing.T) {
	tl := BuildTimeline(TimelineRequest{
		From: day("2026-02-02"),
		To:   day("2026-02-27"),
		Placements: []domain.EventRecord{
			placement("none", "2026-02-02", "2026-02-06", "N.N.", ""),
			placement("t3", "2026-02-02", "2026-02-06", "C.C.", domain.ProgramTier3),
			placement("odd", "2026-02-02", "2026-02-06", "O.O.", "Flexi"),
			placement("t1-late", "2026-02-16", "2026-02-20", "B.B.", domain.ProgramTier1),
			placement("t1-early", "2026-02-09", "2026-02-13", "Z.Z.", domain.ProgramTier1),
		},
	})

	var programs []domain.Program
	for _, g := range tl.Groups {
		programs = append(programs, g.Program)
	}
	assert.Equal(t, []domain.Program{domain.ProgramTier1, domain.ProgramTier3, "Flexi", ""}, programs)

	tier1 := tl.Groups[0]
	assert.Equal(t, "t1-early", tier1.Rows[0].ID)
	assert.Equal(t, "t1-late", tier1.Rows[1].ID)
	assert.Equal(t, "#166534", tier1.Accent.Color)
}

func TestBuildTimeline_ProgramFilter(t *testing.T) {
	tl := BuildTimeline(TimelineRequest{
		From: day("2026-02-02"),
		To:   day("2026-02-06"),
		Placements: []domain.EventRecord{
			placement("a", "2026-02-02", "2026-02-06", "A.A.", domain.ProgramTier1),
			placement("b", "2026-02-02", "2026-02-06", "B.B.", domain.ProgramTier2),
		},
		Programs: []domain.Program{domain.ProgramTier2},
	})
	rows := tl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "b", rows[0].ID)
}

func TestBuildTimeline_TooWideTruncates(t *testing.T) {
	tl := BuildTimeline(TimelineRequest{
		From: day("2026-01-05"),
		To:   day("2026-12-31"),
		Placements: []domain.EventRecord{
			placement("early", "2026-01-05", "2026-01-09", "A.A.", domain.ProgramTier1),
			placement("late", "2026-11-02", "2026-11-06", "B.B.", domain.ProgramTier1),
		},
	})

	assert.True(t, tl.TooWide)
	assert.Len(t, tl.Columns, MaxTimelineColumns)
	assert.Greater(t, tl.RequestedColumns, MaxTimelineColumns)
	rows := tl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "early", rows[0].ID)
	assert.Len(t, rows[0].Cells, MaxTimelineColumns)
}

func TestBuildTimeline_EdgeSpans(t *testing.T) {
	reversed := placement("rev", "2026-02-04", "2026-02-02", "R.R.", domain.ProgramTier1)
	undated := placement("undated", "not a date", "2026-02-06", "U.U.", domain.ProgramTier1)
	outside := placement("out", "2026-03-02", "2026-03-06", "O.O.", domain.ProgramTier1)
	open := rec("open", "2026-02-03", withCategory(domain.CategoryStudentPlacement), withStudent("S.S.", domain.ProgramTier1))

	tl := BuildTimeline(TimelineRequest{
		From:       day("2026-02-02"),
		To:         day("2026-02-06"),
		Placements: []domain.EventRecord{reversed, undated, outside, open},
	})

	assert.Equal(t, 1, tl.Skipped)
	rows := tl.Rows()
	require.Len(t, rows, 2)

	byID := map[string]TimelineRow{}
	for _, r := range rows {
		byID[r.ID] = r
	}
	assert.Equal(t, 1, byID["rev"].BarCells())
	assert.Equal(t, CellBar, byID["rev"].Cells[2].State)
	assert.Equal(t, 1, byID["open"].BarCells())
	assert.Equal(t, CellBar, byID["open"].Cells[1].State)
}

func TestBuildTimeline_WeekendOnlyWindow(t *testing.T) {
	tl := BuildTimeline(TimelineRequest{
		From:       day("2026-02-07"),
		To:         day("2026-02-08"),
		Placements: []domain.EventRecord{placement("p1", "2026-02-02", "2026-02-20", "J.S.", domain.ProgramTier1)},
	})
	assert.Empty(t, tl.Columns)
	assert.Empty(t, tl.Groups)
	assert.False(t, tl.TooWide)
}

func TestBuildTimeline_ReversedWindowListsNothing(t *testing.T) {
	tl := BuildTimeline(TimelineRequest{
		From:       day("2026-02-11"),
		To:         day("2026-02-10"),
		Placements: []domain.EventRecord{placement("p1", "2026-02-02", "2026-02-20", "J.S.", domain.ProgramTier1)},
	})
	assert.Empty(t, tl.Columns)
	assert.Empty(t, tl.Rows())
}

func TestBuildTimeline_WeekendPlacementHasNoRow(t *testing.T) {
	tl := BuildTimeline(TimelineRequest{
		From: day("2026-02-06"),
		To:   day("2026-02-09"),
		Placements: []domain.EventRecord{
			placement("weekend", "2026-02-07", "2026-02-08", "A.B.", domain.ProgramTier1),
			placement("fri", "2026-02-06", "2026-02-06", "J.S.", domain.ProgramTier1),
		},
	})
	require.Len(t, tl.Columns, 2)
	rows := tl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "fri", rows[0].ID)
}

func TestBuildTimeline_CellsOwnTheirMarkers(t *testing.T) {
	tl := BuildTimeline(TimelineRequest{
		From: day("2026-02-02"),
		To:   day("2026-02-06"),
		Placements: []domain.EventRecord{
			placement("p1", "2026-02-02", "2026-02-06", "J.S.", domain.ProgramTier1),
			placement("p2", "2026-02-03", "2026-02-05", "J.S.", domain.ProgramTier1),
		},
		Meetings: []domain.EventRecord{meeting("m1", "2026-02-04", "J.S.", domain.CategoryReviewMeeting)},
	})

	rows := tl.Rows()
	require.Len(t, rows, 2)
	first, second := rows[0].Cells[2], rows[1].Cells[2]
	require.Equal(t, CellBarMarkers, first.State)
	require.Equal(t, CellBarMarkers, second.State)

	first.Markers[0] = domain.CategoryTACMeeting
	assert.Equal(t, []domain.Category{domain.CategoryReviewMeeting}, rows[1].Cells[2].Markers)
}

func TestBusinessDays(t *testing.T) {
	days := BusinessDays(day("2026-02-06"), day("2026-02-10"))
	require.Len(t, days, 3)
	assert.Equal(t, day("2026-02-06"), days[0])
	assert.Equal(t, day("2026-02-09"), days[1])
}

func TestCellState_String(t *testing.T) {
	assert.Equal(t, "empty", CellEmpty.String())
	assert.Equal(t, "bar+markers", CellBarMarkers.String())
	assert.Equal(t, "markers", CellMarkers.String())
}
