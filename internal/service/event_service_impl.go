package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/repository"
	"github.com/google/uuid"
)

// EventInput is the editable content of a general or student event.
// Dates are YYYY-MM-DD and times any form calendar.ParseClock accepts.
type EventInput struct {
	Title           string `json:"title" yaml:"title"`
	Category        string `json:"category" yaml:"category"`
	Date            string `json:"date" yaml:"date"`
	EndDate         string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	StartTime       string `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Location        string `json:"location,omitempty" yaml:"location,omitempty"`
	Notes           string `json:"notes,omitempty" yaml:"notes,omitempty"`
	AddedBy         string `json:"added_by" yaml:"added_by"`
	Program         string `json:"program,omitempty" yaml:"program,omitempty"`
	StudentInitials string `json:"student_initials,omitempty" yaml:"student_initials,omitempty"`
}

type eventService struct {
	events   repository.EventRepo
	observer UseCaseObserver
}

func NewEventService(events repository.EventRepo, observers ...UseCaseObserver) EventService {
	return &eventService{events: events, observer: useCaseObserverOrNoop(observers)}
}

func (s *eventService) Create(ctx context.Context, in EventInput) (rec *domain.EventRecord, err error) {
	done := useCase(ctx, s.observer, "event-create", map[string]any{"category": in.Category})
	defer func() { done(&err) }()

	row, err := BuildEventRow(in)
	if err != nil {
		return nil, err
	}
	row.ID = uuid.New().String()
	if err := s.events.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	out := calendar.NormalizeEvent(*row)
	return &out, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.EventRecord, error) {
	if strings.HasPrefix(id, domain.GovernanceIDPrefix) {
		return nil, fmt.Errorf("event %s: %w", id, ErrReadOnly)
	}
	row, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := calendar.NormalizeEvent(*row)
	return &out, nil
}

func (s *eventService) List(ctx context.Context, from, to *time.Time) ([]domain.EventRecord, error) {
	rows, err := s.events.List(ctx, repository.EventFilter{From: from, To: to, IncludeUndated: true})
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return calendar.NormalizeEvents(rows), nil
}

func (s *eventService) Update(ctx context.Context, id string, in EventInput) (rec *domain.EventRecord, err error) {
	done := useCase(ctx, s.observer, "event-update", map[string]any{"id": id})
	defer func() { done(&err) }()

	if strings.HasPrefix(id, domain.GovernanceIDPrefix) {
		return nil, fmt.Errorf("event %s: %w", id, ErrReadOnly)
	}
	row, err := BuildEventRow(in)
	if err != nil {
		return nil, err
	}
	row.ID = id
	if err := s.events.Update(ctx, row); err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}
	out := calendar.NormalizeEvent(*row)
	return &out, nil
}

func (s *eventService) Delete(ctx context.Context, actor Actor, id string) (err error) {
	done := useCase(ctx, s.observer, "event-delete", map[string]any{"id": id, "actor": actor.Name})
	defer func() { done(&err) }()

	if strings.HasPrefix(id, domain.GovernanceIDPrefix) {
		return fmt.Errorf("event %s: %w", id, ErrReadOnly)
	}
	if !actor.Admin {
		return fmt.Errorf("deleting event %s: %w", id, ErrForbidden)
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}

// BuildEventRow validates in and converts it to a storable row. The end
// date is dropped when it equals the start date.
func BuildEventRow(in EventInput) (*domain.EventRow, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title", "is required")
	}
	addedBy := strings.TrimSpace(in.AddedBy)
	if addedBy == "" {
		return nil, invalid("added_by", "is required")
	}

	category := domain.CategoryOther
	if strings.TrimSpace(in.Category) != "" {
		c, ok := domain.ParseCategory(in.Category)
		if !ok {
			return nil, invalid("category", "unknown category %q", in.Category)
		}
		category = c
	}
	if category == domain.CategoryPACMeeting {
		return nil, invalid("category", "PAC meetings are managed as governance meetings")
	}

	start, ok := calendar.ParseDate(in.Date)
	if !ok || len(strings.TrimSpace(in.Date)) != len(domain.DateLayout) {
		return nil, invalid("date", "must be YYYY-MM-DD, got %q", in.Date)
	}
	row := &domain.EventRow{
		Title:     title,
		EventType: string(category),
		EventDate: domain.DateKey(start),
		Location:  strings.TrimSpace(in.Location),
		Notes:     strings.TrimSpace(in.Notes),
		AddedBy:   addedBy,
	}

	if strings.TrimSpace(in.EndDate) != "" {
		end, ok := calendar.ParseDate(in.EndDate)
		if !ok {
			return nil, invalid("end_date", "must be YYYY-MM-DD, got %q", in.EndDate)
		}
		if end.Before(start) {
			return nil, invalid("end_date", "must not be before the start date")
		}
		if end.After(start) {
			row.EndDate = domain.DateKey(end)
		}
	}

	var err error
	if row.StartTime, err = validClock("start_time", in.StartTime); err != nil {
		return nil, err
	}
	if row.EndTime, err = validClock("end_time", in.EndTime); err != nil {
		return nil, err
	}
	if row.StartTime == "" && row.EndTime != "" {
		return nil, invalid("start_time", "is required when an end time is given")
	}
	if row.StartTime != "" && row.EndTime != "" && row.EndTime < row.StartTime && row.EndDate == "" {
		return nil, invalid("end_time", "must not be before the start time")
	}

	if p := strings.TrimSpace(in.Program); p != "" {
		program := domain.ParseProgram(p)
		if !program.IsKnown() {
			return nil, invalid("program", "unknown program %q", p)
		}
		row.Program = string(program)
	}
	row.StudentInitials = strings.TrimSpace(in.StudentInitials)
	if category.IsStudentRelated() && row.StudentInitials == "" {
		return nil, invalid("student_initials", "is required for %s", category)
	}
	return row, nil
}

func validClock(field, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	clock, ok := calendar.ParseClock(raw)
	if !ok {
		return "", invalid(field, "unrecognized time %q", raw)
	}
	return clock, nil
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
