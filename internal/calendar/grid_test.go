package calendar

import (
	"fmt"
	"testing"
	"time"

	"github.com/cowandilla/clccal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthGrid_Coverage(t *testing.T) {
	// March 2026 starts on a Sunday and ends on a Tuesday.
	ym := YearMonth{Year: 2026, Month: time.March}
	g := BuildMonthGrid(ym, DateIndex{}, Selection{})

	require.Len(t, g.Weeks, 6)
	assert.Equal(t, 31, g.PopulatedCells())

	first := g.Weeks[0]
	assert.Equal(t, day("2026-02-23"), first[0].Date)
	assert.True(t, first[5].Padding)
	assert.False(t, first[6].Padding)
	assert.Equal(t, day("2026-03-01"), first[6].Date)

	last := g.Weeks[5]
	assert.Equal(t, day("2026-03-31"), last[1].Date)
	assert.True(t, last[2].Padding)
}

func TestBuildMonthGrid_FebruaryExactFit(t *testing.T) {
	// February 2021 begins on a Monday and has exactly four weeks.
	g := BuildMonthGrid(YearMonth{Year: 2021, Month: time.February}, DateIndex{}, Selection{})
	assert.Len(t, g.Weeks, 4)
	assert.Equal(t, 28, g.PopulatedCells())
}

func TestBuildMonthGrid_OverflowAndPadding(t *testing.T) {
	var recs []domain.EventRecord
	for i := 0; i < 6; i++ {
		recs = append(recs, rec(fmt.Sprintf("e%d", i), "2026-03-10"))
	}
	recs = append(recs, rec("pad", "2026-02-27"))
	ym := YearMonth{Year: 2026, Month: time.March}
	w := ym.FetchWindow()
	idx := BuildIndex(&w, recs)

	g := BuildMonthGrid(ym, idx, Selection{})

	cell := g.Weeks[2][1]
	require.Equal(t, day("2026-03-10"), cell.Date)
	assert.Len(t, cell.Events, MonthCellLimit)
	assert.Equal(t, 2, cell.Overflow)
	assert.Equal(t, 6, cell.Total)
	assert.Equal(t, []string{"e0", "e1", "e2", "e3"}, ids(cell.Events))

	padding := g.Weeks[0][4]
	require.Equal(t, day("2026-02-27"), padding.Date)
	assert.True(t, padding.Padding)
	assert.Empty(t, padding.Events)
}

func TestBuildMonthGrid_SelectionBeatsToday(t *testing.T) {
	today := day("2026-03-10")
	ym := YearMonth{Year: 2026, Month: time.March}

	g := BuildMonthGrid(ym, DateIndex{}, Selection{Today: &today, Selected: ptr(today)})
	cell := g.Weeks[2][1]
	assert.True(t, cell.IsToday)
	assert.True(t, cell.IsSelected)
	assert.Equal(t, HighlightSelected, cell.Highlight())

	g = BuildMonthGrid(ym, DateIndex{}, Selection{Today: &today, Selected: ptr(day("2026-03-11"))})
	assert.Equal(t, HighlightToday, g.Weeks[2][1].Highlight())
	assert.Equal(t, HighlightSelected, g.Weeks[2][2].Highlight())
	assert.Equal(t, HighlightNone, g.Weeks[2][3].Highlight())
}

func TestBuildMonthGrid_CarriesUndated(t *testing.T) {
	idx := BuildIndex(nil, []domain.EventRecord{rec("bad", "2026/03/10")})
	g := BuildMonthGrid(YearMonth{Year: 2026, Month: time.March}, idx, Selection{})
	require.Len(t, g.Undated, 1)
	assert.Equal(t, "bad", g.Undated[0].ID)
}

func TestBuildWeekGrid_SnapsToMondayWithoutTruncation(t *testing.T) {
	var recs []domain.EventRecord
	for i := 0; i < 6; i++ {
		recs = append(recs, rec(fmt.Sprintf("e%d", i), "2026-03-04"))
	}
	idx := BuildIndex(nil, recs)

	g := BuildWeekGrid(day("2026-03-05"), idx, Selection{})

	assert.Equal(t, day("2026-03-02"), g.Start)
	assert.Equal(t, day("2026-03-08"), g.End())
	assert.Len(t, g.Days[2].Events, 6)
	assert.Zero(t, g.Days[2].Overflow)
	for i, c := range g.Days {
		assert.Equal(t, day("2026-03-02").AddDate(0, 0, i), c.Date)
		assert.False(t, c.Padding)
	}
}
