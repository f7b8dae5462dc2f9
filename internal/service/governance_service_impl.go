package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/db"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/repository"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
)

// MaxSeriesOccurrences caps how many rows one materialization may write.
const MaxSeriesOccurrences = 60

// GovernanceInput is one PAC meeting occurrence.
type GovernanceInput struct {
	Date        string `json:"date" yaml:"date"`
	MeetingType string `json:"meeting_type,omitempty" yaml:"meeting_type,omitempty"`
	StartTime   string `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	Chair       string `json:"chair,omitempty" yaml:"chair,omitempty"`
}

// SeriesInput describes a recurring PAC meeting. Rule is an RRULE value
// such as "FREQ=MONTHLY;BYDAY=1MO". Occurrences are generated from Start
// through Until (a year after Start when zero), minus ExDates.
type SeriesInput struct {
	Rule    string
	Start   time.Time
	Until   time.Time
	ExDates []time.Time
	Meeting GovernanceInput
}

// SeriesResult reports a materialized series.
type SeriesResult struct {
	SeriesID    string
	Occurrences []domain.EventRecord
	Capped      bool
}

type governanceService struct {
	meetings repository.GovernanceRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewGovernanceService(meetings repository.GovernanceRepo, uow db.UnitOfWork, observers ...UseCaseObserver) GovernanceService {
	return &governanceService{meetings: meetings, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *governanceService) Add(ctx context.Context, in GovernanceInput) (rec *domain.EventRecord, err error) {
	done := useCase(ctx, s.observer, "governance-add", map[string]any{"date": in.Date})
	defer func() { done(&err) }()

	row, err := BuildGovernanceRow(in)
	if err != nil {
		return nil, err
	}
	row.ID = uuid.New().String()
	if err := s.meetings.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("creating governance meeting: %w", err)
	}
	out, _ := calendar.NormalizeGovernance(*row)
	return &out, nil
}

func (s *governanceService) List(ctx context.Context, from, to *time.Time) ([]domain.EventRecord, error) {
	rows, err := s.meetings.List(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing governance meetings: %w", err)
	}
	return calendar.NormalizeGovernanceRows(rows), nil
}

func (s *governanceService) Materialize(ctx context.Context, in SeriesInput) (res *SeriesResult, err error) {
	fields := map[string]any{"rule": in.Rule}
	done := useCase(ctx, s.observer, "governance-materialize", fields)
	defer func() { done(&err) }()

	template, err := BuildGovernanceRow(GovernanceInput{
		Date:        domain.DateKey(in.Start),
		MeetingType: in.Meeting.MeetingType,
		StartTime:   in.Meeting.StartTime,
		Location:    in.Meeting.Location,
		Chair:       in.Meeting.Chair,
	})
	if err != nil {
		return nil, err
	}
	dates, capped, err := ExpandSeries(in)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, invalid("rule", "produces no occurrences between %s and %s",
			domain.DateKey(in.Start), domain.DateKey(seriesUntil(in)))
	}

	res = &SeriesResult{SeriesID: uuid.New().String(), Capped: capped}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteGovernanceRepo(tx)
		for _, d := range dates {
			row := *template
			row.ID = uuid.New().String()
			row.MeetingDate = domain.DateKey(d)
			row.SeriesID = res.SeriesID
			if err := repo.Create(ctx, &row); err != nil {
				return fmt.Errorf("creating occurrence %s: %w", row.MeetingDate, err)
			}
			rec, _ := calendar.NormalizeGovernance(row)
			res.Occurrences = append(res.Occurrences, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("materializing series: %w", err)
	}
	fields["occurrences"] = len(res.Occurrences)
	fields["capped"] = capped
	return res, nil
}

func (s *governanceService) Delete(ctx context.Context, actor Actor, id string) (err error) {
	id = strings.TrimPrefix(id, domain.GovernanceIDPrefix)
	done := useCase(ctx, s.observer, "governance-delete", map[string]any{"id": id, "actor": actor.Name})
	defer func() { done(&err) }()

	if !actor.Admin {
		return fmt.Errorf("deleting governance meeting %s: %w", id, ErrForbidden)
	}
	if err := s.meetings.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting governance meeting: %w", err)
	}
	return nil
}

func (s *governanceService) DeleteSeries(ctx context.Context, actor Actor, seriesID string) (n int64, err error) {
	done := useCase(ctx, s.observer, "governance-delete-series", map[string]any{"series": seriesID, "actor": actor.Name})
	defer func() { done(&err) }()

	if !actor.Admin {
		return 0, fmt.Errorf("deleting governance series %s: %w", seriesID, ErrForbidden)
	}
	n, err = s.meetings.DeleteSeries(ctx, seriesID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("governance series %s: %w", seriesID, repository.ErrNotFound)
	}
	return n, nil
}

// BuildGovernanceRow validates in and converts it to a storable row.
func BuildGovernanceRow(in GovernanceInput) (*domain.GovernanceRow, error) {
	d, ok := calendar.ParseDate(in.Date)
	if !ok || len(strings.TrimSpace(in.Date)) != len(domain.DateLayout) {
		return nil, invalid("date", "must be YYYY-MM-DD, got %q", in.Date)
	}
	startTime, err := validClock("start_time", in.StartTime)
	if err != nil {
		return nil, err
	}
	return &domain.GovernanceRow{
		MeetingDate: domain.DateKey(d),
		MeetingType: strings.TrimSpace(in.MeetingType),
		StartTime:   startTime,
		Location:    strings.TrimSpace(in.Location),
		Chair:       strings.TrimSpace(in.Chair),
	}, nil
}

// ExpandSeries lists the occurrence dates of a series, at most
// MaxSeriesOccurrences of them; capped reports truncation.
func ExpandSeries(in SeriesInput) (dates []time.Time, capped bool, err error) {
	rule := strings.TrimPrefix(strings.TrimSpace(in.Rule), "RRULE:")
	if rule == "" {
		return nil, false, invalid("rule", "is required")
	}
	if in.Start.IsZero() {
		return nil, false, invalid("start", "is required")
	}
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, false, invalid("rule", "%v", err)
	}
	start := domain.Day(in.Start)
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range in.ExDates {
		set.ExDate(domain.Day(ex))
	}

	for _, occ := range set.Between(start, seriesUntil(in), true) {
		if len(dates) == MaxSeriesOccurrences {
			capped = true
			break
		}
		dates = append(dates, domain.Day(occ))
	}
	return dates, capped, nil
}

func seriesUntil(in SeriesInput) time.Time {
	if in.Until.IsZero() {
		return domain.Day(in.Start).AddDate(1, 0, 0)
	}
	return domain.Day(in.Until)
}
