package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
)

// CalendarOptions tunes the view builders. Zero values pick defaults.
type CalendarOptions struct {
	Logger          *slog.Logger
	Now             func() time.Time
	TimelinePadDays int
	AgendaWeeks     int
}

type calendarService struct {
	store    RecordStore
	logger   *slog.Logger
	now      func() time.Time
	padDays  int
	weeks    int
	observer UseCaseObserver
}

func NewCalendarService(store RecordStore, opts CalendarOptions, observers ...UseCaseObserver) CalendarService {
	s := &calendarService{
		store:    store,
		logger:   loggerOrDiscard(opts.Logger),
		now:      opts.Now,
		padDays:  opts.TimelinePadDays,
		weeks:    opts.AgendaWeeks,
		observer: useCaseObserverOrNoop(observers),
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.padDays <= 0 {
		s.padDays = DefaultTimelinePadDays
	}
	if s.weeks <= 0 {
		s.weeks = calendar.DefaultAgendaWeeks
	}
	return s
}

func (s *calendarService) today() time.Time {
	return domain.Day(s.now())
}

func (s *calendarService) Month(ctx context.Context, req MonthRequest) (view *MonthView, err error) {
	today := s.today()
	ym := req.Month
	if ym.Year == 0 {
		ym = calendar.MonthOf(today)
	}
	done := useCase(ctx, s.observer, "month-view", map[string]any{"month": ym.String()})
	defer func() { done(&err) }()

	idx, warnings, err := s.index(ctx, ym.FetchWindow())
	if err != nil {
		return nil, err
	}
	grid := calendar.BuildMonthGrid(ym, idx, calendar.Selection{Today: &today, Selected: req.Selected})
	return &MonthView{Grid: grid, Today: today, Warnings: warnings}, nil
}

func (s *calendarService) Week(ctx context.Context, req WeekRequest) (view *WeekView, err error) {
	today := s.today()
	start := req.Start
	if start.IsZero() {
		start = today
	}
	window := calendar.WeekWindow(start)
	done := useCase(ctx, s.observer, "week-view", map[string]any{"week": domain.DateKey(window.From)})
	defer func() { done(&err) }()

	idx, warnings, err := s.index(ctx, window)
	if err != nil {
		return nil, err
	}
	grid := calendar.BuildWeekGrid(window.From, idx, calendar.Selection{Today: &today, Selected: req.Selected})
	return &WeekView{Grid: grid, Today: today, Warnings: warnings}, nil
}

func (s *calendarService) Agenda(ctx context.Context, req AgendaRequest) (view *AgendaView, err error) {
	today := s.today()
	window := calendar.DefaultAgendaWindow(today, s.weeks)
	if req.From != nil {
		window = calendar.DefaultAgendaWindow(*req.From, s.weeks)
	}
	if req.To != nil {
		window.To = domain.Day(*req.To)
	}
	fields := map[string]any{"from": domain.DateKey(window.From), "to": domain.DateKey(window.To)}
	done := useCase(ctx, s.observer, "agenda-view", fields)
	defer func() { done(&err) }()

	idx, warnings, err := s.index(ctx, window)
	if err != nil {
		return nil, err
	}
	agenda := calendar.BuildAgenda(idx, window, calendar.CategoryFilter(req.Categories), today)
	fields["entries"] = agenda.Count
	return &AgendaView{Agenda: agenda, Today: today, Warnings: warnings}, nil
}

func (s *calendarService) Timeline(ctx context.Context, req TimelineRequest) (view *TimelineView, err error) {
	from := calendar.WeekStartOf(s.today())
	if req.From != nil {
		from = domain.Day(*req.From)
	}
	to := domain.AddDays(from, DefaultTimelineWeeks*7-3)
	if req.To != nil {
		to = domain.Day(*req.To)
	}
	window := calendar.NewWindow(from, to)
	fields := map[string]any{"from": domain.DateKey(from), "to": domain.DateKey(to)}
	done := useCase(ctx, s.observer, "timeline-view", fields)
	defer func() { done(&err) }()

	padFrom := domain.AddDays(from, -s.padDays)
	placementRows, err := s.store.FetchEventsByCategory(ctx, &padFrom, &to,
		[]domain.Category{domain.CategoryStudentPlacement})
	if err != nil {
		return nil, fmt.Errorf("fetching placements: %w", err)
	}
	meetingRows, err := s.store.FetchEventsByCategory(ctx, &from, &to, domain.StudentMeetingCategories)
	if err != nil {
		return nil, fmt.Errorf("fetching student meetings: %w", err)
	}

	tl := calendar.BuildTimeline(calendar.TimelineRequest{
		From:       from,
		To:         to,
		Placements: calendar.NormalizeEvents(placementRows),
		Meetings:   calendar.NormalizeEvents(meetingRows),
		Programs:   req.Programs,
	})
	fields["rows"] = len(tl.Rows())
	fields["too_wide"] = tl.TooWide

	var warnings Warnings
	if tl.TooWide {
		warnings = append(warnings, fmt.Sprintf(
			"Range covers %d school days; showing the first %d.", tl.RequestedColumns, calendar.MaxTimelineColumns))
	}
	if tl.Skipped > 0 {
		warnings = append(warnings, fmt.Sprintf("%d placement(s) without a valid start date were skipped.", tl.Skipped))
	}
	return &TimelineView{Timeline: tl, Window: window, Warnings: warnings}, nil
}

func (s *calendarService) Transitions(ctx context.Context, studentInitials string) (view *TransitionsView, err error) {
	done := useCase(ctx, s.observer, "transitions-view", map[string]any{"student": studentInitials})
	defer func() { done(&err) }()

	var warnings Warnings
	rows, fetchErr := s.store.FetchTransitionWeeks(ctx, studentInitials)
	if fetchErr != nil {
		s.logger.WarnContext(ctx, "transition schedules unavailable", "error", fetchErr)
		warnings = append(warnings, "Transition schedules could not be loaded.")
		rows = nil
	}
	students := calendar.BuildTransitionSchedules(calendar.NormalizeTransitions(rows))
	return &TransitionsView{Students: students, Warnings: warnings}, nil
}

func (s *calendarService) Records(ctx context.Context, window calendar.Window) (view *RecordsView, err error) {
	fields := map[string]any{"from": domain.DateKey(window.From), "to": domain.DateKey(window.To)}
	done := useCase(ctx, s.observer, "records", fields)
	defer func() { done(&err) }()

	idx, warnings, err := s.index(ctx, window)
	if err != nil {
		return nil, err
	}
	records := calendar.BuildAgenda(idx, window, nil, s.today()).Entries()
	fields["records"] = len(records)
	return &RecordsView{Window: window, Records: records, Warnings: warnings}, nil
}

// index fetches general events and governance occurrences for window.
// Governance is an optional overlay: when it cannot be loaded the view is
// still built and a warning is returned.
func (s *calendarService) index(ctx context.Context, window calendar.Window) (calendar.DateIndex, Warnings, error) {
	rows, err := s.store.FetchEvents(ctx, &window.From, &window.To)
	if err != nil {
		return calendar.DateIndex{}, nil, fmt.Errorf("fetching events: %w", err)
	}

	var warnings Warnings
	govRows, err := s.store.FetchGovernanceMeetings(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "governance meetings unavailable", "error", err)
		warnings = append(warnings, "PAC meetings could not be loaded.")
		govRows = nil
	}

	idx := calendar.BuildIndex(&window,
		calendar.NormalizeEvents(rows),
		calendar.NormalizeGovernanceRows(govRows),
	)
	s.logger.DebugContext(ctx, "records indexed",
		"from", domain.DateKey(window.From), "to", domain.DateKey(window.To), "records", idx.Len())
	return idx, warnings, nil
}
