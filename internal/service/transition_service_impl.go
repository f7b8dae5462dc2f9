package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/repository"
	"github.com/google/uuid"
)

// OffsiteInput is the off-site window of one weekday. Both empty means
// on-site all day.
type OffsiteInput struct {
	Start string `json:"start,omitempty" yaml:"start,omitempty"`
	End   string `json:"end,omitempty" yaml:"end,omitempty"`
}

// TransitionInput is one week of a student's transition schedule. Days
// are Monday through Friday.
type TransitionInput struct {
	StudentInitials string          `json:"student_initials" yaml:"student_initials"`
	Program         string          `json:"program,omitempty" yaml:"program,omitempty"`
	Term            int             `json:"term" yaml:"term"`
	WeekLabel       string          `json:"week_label,omitempty" yaml:"week_label,omitempty"`
	WeekStart       string          `json:"week_start" yaml:"week_start"`
	Days            [5]OffsiteInput `json:"days" yaml:"days"`
}

type transitionService struct {
	weeks    repository.TransitionRepo
	observer UseCaseObserver
}

func NewTransitionService(weeks repository.TransitionRepo, observers ...UseCaseObserver) TransitionService {
	return &transitionService{weeks: weeks, observer: useCaseObserverOrNoop(observers)}
}

func (s *transitionService) Add(ctx context.Context, in TransitionInput) (w *domain.TransitionWeek, err error) {
	done := useCase(ctx, s.observer, "transition-add", map[string]any{"student": in.StudentInitials})
	defer func() { done(&err) }()

	row, err := BuildTransitionRow(in)
	if err != nil {
		return nil, err
	}
	row.ID = uuid.New().String()
	if err := s.weeks.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("creating transition week: %w", err)
	}
	out := calendar.NormalizeTransition(*row)
	return &out, nil
}

func (s *transitionService) Update(ctx context.Context, id string, in TransitionInput) (w *domain.TransitionWeek, err error) {
	done := useCase(ctx, s.observer, "transition-update", map[string]any{"id": id})
	defer func() { done(&err) }()

	row, err := BuildTransitionRow(in)
	if err != nil {
		return nil, err
	}
	row.ID = id
	if err := s.weeks.Update(ctx, row); err != nil {
		return nil, fmt.Errorf("updating transition week: %w", err)
	}
	out := calendar.NormalizeTransition(*row)
	return &out, nil
}

func (s *transitionService) List(ctx context.Context, studentInitials string) ([]domain.TransitionWeek, error) {
	rows, err := s.weeks.List(ctx, studentInitials)
	if err != nil {
		return nil, fmt.Errorf("listing transition weeks: %w", err)
	}
	return calendar.NormalizeTransitions(rows), nil
}

func (s *transitionService) Delete(ctx context.Context, actor Actor, id string) (err error) {
	done := useCase(ctx, s.observer, "transition-delete", map[string]any{"id": id, "actor": actor.Name})
	defer func() { done(&err) }()

	if !actor.Admin {
		return fmt.Errorf("deleting transition week %s: %w", id, ErrForbidden)
	}
	if err := s.weeks.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting transition week: %w", err)
	}
	return nil
}

// BuildTransitionRow validates in and converts it to a storable row.
func BuildTransitionRow(in TransitionInput) (*domain.TransitionRow, error) {
	initials := strings.TrimSpace(in.StudentInitials)
	if initials == "" {
		return nil, invalid("student_initials", "is required")
	}
	if in.Term < domain.MinTerm || in.Term > domain.MaxTerm {
		return nil, invalid("term", "must be between %d and %d, got %d", domain.MinTerm, domain.MaxTerm, in.Term)
	}
	start, ok := calendar.ParseDate(in.WeekStart)
	if !ok {
		return nil, invalid("week_start", "must be YYYY-MM-DD, got %q", in.WeekStart)
	}
	if start.Weekday() != time.Monday {
		return nil, invalid("week_start", "%s is a %s, not a Monday", domain.DateKey(start), start.Weekday())
	}

	row := &domain.TransitionRow{
		StudentInitials: initials,
		Term:            in.Term,
		WeekLabel:       strings.TrimSpace(in.WeekLabel),
		WeekStart:       domain.DateKey(start),
	}
	if p := strings.TrimSpace(in.Program); p != "" {
		program := domain.ParseProgram(p)
		if !program.IsKnown() {
			return nil, invalid("program", "unknown program %q", p)
		}
		row.Program = string(program)
	}

	for i, day := range in.Days {
		field := strings.ToLower(domain.WeekdayNames[i])
		startClock, err := validClock(field+".start", day.Start)
		if err != nil {
			return nil, err
		}
		endClock, err := validClock(field+".end", day.End)
		if err != nil {
			return nil, err
		}
		if (startClock == "") != (endClock == "") {
			return nil, invalid(field, "needs both a start and an end time")
		}
		if endClock != "" && endClock <= startClock {
			return nil, invalid(field, "end time must be after start time")
		}
		row.DayStart[i], row.DayEnd[i] = startClock, endClock
	}
	return row, nil
}
