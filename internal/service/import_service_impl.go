package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cowandilla/clccal/internal/db"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/importer"
	"github.com/cowandilla/clccal/internal/repository"
	"github.com/google/uuid"
)

// ImportAddedBy is recorded on imported events that name no author.
const ImportAddedBy = "Import"

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService writes every record of an import inside one
// transaction: either the whole file lands or nothing does.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

type importPlan struct {
	events      []*domain.EventRow
	governance  []*domain.GovernanceRow
	transitions []*domain.TransitionRow
}

func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (res *ImportResult, err error) {
	fields := map[string]any{"records": schema.Len()}
	done := useCase(ctx, s.observer, "import", fields)
	defer func() { done(&err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	plan, err := buildImportPlan(schema)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		events := repository.NewSQLiteEventRepo(tx)
		meetings := repository.NewSQLiteGovernanceRepo(tx)
		weeks := repository.NewSQLiteTransitionRepo(tx)

		for _, row := range plan.events {
			if err := events.Create(ctx, row); err != nil {
				return fmt.Errorf("creating event %q: %w", row.Title, err)
			}
		}
		for _, row := range plan.governance {
			if err := meetings.Create(ctx, row); err != nil {
				return fmt.Errorf("creating governance meeting %s: %w", row.MeetingDate, err)
			}
		}
		for _, row := range plan.transitions {
			if err := weeks.Create(ctx, row); err != nil {
				return fmt.Errorf("creating transition week %s %s: %w", row.StudentInitials, row.WeekStart, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing: %w", err)
	}

	res = &ImportResult{
		EventCount:      len(plan.events),
		GovernanceCount: len(plan.governance),
		TransitionCount: len(plan.transitions),
	}
	fields["events"] = res.EventCount
	fields["governance"] = res.GovernanceCount
	fields["transitions"] = res.TransitionCount
	return res, nil
}

// buildImportPlan runs every record through the same row builders the
// editors use and expands series. All failures are reported together.
func buildImportPlan(schema *importer.ImportSchema) (*importPlan, error) {
	plan := &importPlan{}
	var errs []error

	for i, e := range schema.Events {
		in := EventInput{
			Title:           e.Title,
			Category:        e.Category,
			Date:            e.Date,
			EndDate:         e.EndDate,
			StartTime:       e.StartTime,
			EndTime:         e.EndTime,
			Location:        e.Location,
			Notes:           e.Notes,
			AddedBy:         e.AddedBy,
			Program:         e.Program,
			StudentInitials: e.StudentInitials,
		}
		if strings.TrimSpace(in.AddedBy) == "" {
			in.AddedBy = ImportAddedBy
		}
		row, err := BuildEventRow(in)
		if err != nil {
			errs = append(errs, fmt.Errorf("events[%d].%w", i, err))
			continue
		}
		row.ID = uuid.New().String()
		plan.events = append(plan.events, row)
	}

	for i, g := range schema.Governance {
		row, err := BuildGovernanceRow(governanceInput(g))
		if err != nil {
			errs = append(errs, fmt.Errorf("governance[%d].%w", i, err))
			continue
		}
		row.ID = uuid.New().String()
		plan.governance = append(plan.governance, row)
	}

	for i, sr := range schema.Series {
		rows, err := expandImportedSeries(sr)
		if err != nil {
			errs = append(errs, fmt.Errorf("series[%d].%w", i, err))
			continue
		}
		plan.governance = append(plan.governance, rows...)
	}

	for i, w := range schema.Transitions {
		in := TransitionInput{
			StudentInitials: w.StudentInitials,
			Program:         w.Program,
			Term:            w.Term,
			WeekLabel:       w.WeekLabel,
			WeekStart:       w.WeekStart,
		}
		for key, d := range w.Days {
			in.Days[importer.DayIndex(key)] = OffsiteInput{Start: d.Start, End: d.End}
		}
		row, err := BuildTransitionRow(in)
		if err != nil {
			errs = append(errs, fmt.Errorf("transitions[%d].%w", i, err))
			continue
		}
		row.ID = uuid.New().String()
		plan.transitions = append(plan.transitions, row)
	}

	if len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	return plan, nil
}

func expandImportedSeries(sr importer.SeriesImport) ([]*domain.GovernanceRow, error) {
	in := SeriesInput{Rule: sr.Rule, Meeting: governanceInput(sr.Meeting)}
	in.Start, _ = time.Parse(domain.DateLayout, strings.TrimSpace(sr.Start))
	if u := strings.TrimSpace(sr.Until); u != "" {
		in.Until, _ = time.Parse(domain.DateLayout, u)
	}
	for _, ex := range sr.ExDates {
		if d, err := time.Parse(domain.DateLayout, strings.TrimSpace(ex)); err == nil {
			in.ExDates = append(in.ExDates, d)
		}
	}

	meeting := in.Meeting
	meeting.Date = domain.DateKey(in.Start)
	template, err := BuildGovernanceRow(meeting)
	if err != nil {
		return nil, err
	}
	dates, _, err := ExpandSeries(in)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, invalid("rule", "produces no occurrences")
	}

	seriesID := uuid.New().String()
	rows := make([]*domain.GovernanceRow, 0, len(dates))
	for _, d := range dates {
		row := *template
		row.ID = uuid.New().String()
		row.MeetingDate = domain.DateKey(d)
		row.SeriesID = seriesID
		rows = append(rows, &row)
	}
	return rows, nil
}

func governanceInput(g importer.GovernanceImport) GovernanceInput {
	return GovernanceInput{
		Date:        g.Date,
		MeetingType: g.MeetingType,
		StartTime:   g.StartTime,
		Location:    g.Location,
		Chair:       g.Chair,
	}
}
