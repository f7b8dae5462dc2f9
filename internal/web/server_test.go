package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cowandilla/clccal/internal/repository"
	"github.com/cowandilla/clccal/internal/service"
	"github.com/cowandilla/clccal/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const adminPassword = "letmein"

func now() time.Time { return time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC) }

type fixture struct {
	server *Server
	events repository.EventRepo
	govern repository.GovernanceRepo
	weeks  repository.TransitionRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	events := repository.NewSQLiteEventRepo(database)
	govern := repository.NewSQLiteGovernanceRepo(database)
	weeks := repository.NewSQLiteTransitionRepo(database)
	uow := testutil.NewTestUoW(database)

	store := service.NewRecordStore(events, govern, weeks)
	srv := NewServer(Deps{
		Calendar:    service.NewCalendarService(store, service.CalendarOptions{Now: now}),
		Events:      service.NewEventService(events),
		Governance:  service.NewGovernanceService(govern, uow),
		Transitions: service.NewTransitionService(weeks),
		IsAdmin:     PasswordChecker(adminPassword),
		Now:         now,
	})
	return &fixture{server: srv, events: events, govern: govern, weeks: weeks}
}

func (f *fixture) do(t *testing.T, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestMonth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.events.Create(ctx, testutil.NewTestEventRow("Briefing", "2026-03-10", testutil.WithEventType("Staff Meeting"))))
	require.NoError(t, f.govern.Create(ctx, testutil.NewTestGovernanceRow("2026-03-10")))

	rec := f.do(t, http.MethodGet, "/api/month?month=2026-03&selected=2026-03-10", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	month := decode[monthDTO](t, rec)
	assert.Equal(t, "2026-03", month.Month)
	assert.Equal(t, "March 2026", month.Title)
	assert.Equal(t, "2026-02", month.Prev)
	assert.Equal(t, "2026-04", month.Next)
	assert.Equal(t, "2026-03-04", month.Today)

	var found *cellDTO
	for _, week := range month.Weeks {
		require.Len(t, week, 7)
		for i := range week {
			if week[i].Date == "2026-03-10" {
				found = &week[i]
			}
		}
	}
	require.NotNil(t, found)
	assert.True(t, found.Selected)
	require.Len(t, found.Events, 2)
	readOnly := 0
	for _, e := range found.Events {
		if e.ReadOnly {
			readOnly++
		}
	}
	assert.Equal(t, 1, readOnly)
}

func TestMonth_BadParams(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/month?month=March", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/month?selected=10/03/2026", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/agenda?category=Assembly", "").Code)
}

func TestWeekAndAgenda(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.events.Create(ctx, testutil.NewTestEventRow("PD day", "2026-03-05", testutil.WithEventType("PD / Professional Dev"))))
	require.NoError(t, f.events.Create(ctx, testutil.NewTestEventRow("Briefing", "2026-03-05", testutil.WithEventType("Staff Meeting"), testutil.WithTimes("08:15", ""))))

	rec := f.do(t, http.MethodGet, "/api/week?start=2026-03-04", "")
	require.Equal(t, http.StatusOK, rec.Code)
	week := decode[weekDTO](t, rec)
	assert.Equal(t, "2026-03-02", week.Start)
	assert.Equal(t, "2026-03-08", week.End)
	assert.Len(t, week.Days, 7)
	assert.Len(t, week.Days[3].Events, 2)

	rec = f.do(t, http.MethodGet, "/api/agenda?category=Staff%20Meeting", "")
	require.Equal(t, http.StatusOK, rec.Code)
	agenda := decode[agendaDTO](t, rec)
	assert.Equal(t, 1, agenda.Count)
	require.Len(t, agenda.Groups, 1)
	assert.Equal(t, "Thursday 5 March 2026", agenda.Groups[0].Header)
	assert.Equal(t, "8:15 AM", agenda.Groups[0].Entries[0].TimeLabel)
}

func TestTimeline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.events.Create(ctx, testutil.NewTestPlacement("J.S.", "Tier 1", "2026-02-02", "2026-02-06")))
	require.NoError(t, f.events.Create(ctx, testutil.NewTestEventRow("Review", "2026-02-04",
		testutil.WithEventType("Review Meeting"), testutil.WithStudent("J.S.", "Tier 1"))))

	rec := f.do(t, http.MethodGet, "/api/timeline?from=2026-02-02&to=2026-02-06", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tl := decode[timelineDTO](t, rec)
	assert.Len(t, tl.Columns, 5)
	require.Len(t, tl.Groups, 1)
	assert.Equal(t, "Tier 1", tl.Groups[0].Program)
	require.Len(t, tl.Groups[0].Rows, 1)
	cells := tl.Groups[0].Rows[0].Cells
	require.Len(t, cells, 5)
	assert.Equal(t, "bar+markers", cells[2].State)
	assert.Equal(t, []string{"Review Meeting"}, cells[2].Markers)
}

func TestEventLifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/events", `{"title":"Excursion","category":"Excursion / Event","date":"2026-03-12","end_date":"2026-03-13","added_by":"Sam"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[eventDTO](t, rec)
	assert.Equal(t, "2026-03-13", created.EndDate)

	rec = f.do(t, http.MethodPost, "/api/events", `{"title":"","date":"2026-03-12","added_by":"Sam"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title", decode[errorResponse](t, rec).Field)

	rec = f.do(t, http.MethodPut, "/api/events/"+created.ID, `{"title":"Excursion (zoo)","category":"Excursion / Event","date":"2026-03-12","added_by":"Sam"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Excursion (zoo)", decode[eventDTO](t, rec).Title)

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodDelete, "/api/events/"+created.ID, "").Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodDelete, "/api/events/"+created.ID, "", AdminHeader, "wrong").Code)
	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/events/"+created.ID, "", AdminHeader, adminPassword).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/events/"+created.ID, "").Code)

	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodDelete, "/api/events/pac_1", "", AdminHeader, adminPassword).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/api/events", `{"title":`).Code)
}

func TestGovernanceAndTransitions(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/governance", `{"date":"2026-03-16","start_time":"6:30 PM","chair":"R. Patel"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	meeting := decode[eventDTO](t, rec)
	assert.True(t, meeting.ReadOnly)
	assert.Equal(t, "18:30", meeting.StartTime)

	rec = f.do(t, http.MethodGet, "/api/governance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]eventDTO](t, rec), 1)
	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/governance/"+meeting.ID, "", AdminHeader, adminPassword).Code)

	body := `{"student_initials":"J.S.","program":"Tier 2","term":1,"week_start":"2026-03-02","days":[{"start":"9:00","end":"12:00"},{},{},{},{}]}`
	rec = f.do(t, http.MethodPost, "/api/transitions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	schedules := decode[transitionsDTO](t, rec)
	require.Len(t, schedules.Students, 1)
	require.Len(t, schedules.Students[0].Weeks, 1)
	days := schedules.Students[0].Weeks[0].Days
	assert.Equal(t, "Off-site 9:00 AM – 12:00 PM", days[0].Description)
	assert.True(t, days[1].OnSite)
	assert.Equal(t, 180, schedules.Students[0].Weeks[0].OffsiteMinutes)

	rec = f.do(t, http.MethodPost, "/api/transitions", strings.Replace(body, "2026-03-02", "2026-03-04", 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportICS(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.events.Create(context.Background(), testutil.NewTestEventRow("Assembly", "2026-03-09")))

	rec := f.do(t, http.MethodGet, "/api/export.ics?from=2026-03-01&to=2026-03-31", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, rec.Body.String(), "SUMMARY:Assembly")
}

func TestLegend(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/legend", "")
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]legendEntry](t, rec)
	assert.Len(t, entries, 13)
	assert.Equal(t, "Staff Meeting", entries[0].Category)
}

func TestStart_StopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.server.Start(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
