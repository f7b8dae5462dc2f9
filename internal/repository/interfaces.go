package repository

import (
	"context"
	"time"

	"github.com/cowandilla/clccal/internal/domain"
)

// EventFilter narrows an event listing. Nil bounds are open; bounds are
// inclusive and compare against the start date. Categories and
// StudentInitials are ignored when empty. IncludeUndated keeps rows whose
// stored date is not a YYYY-MM-DD value even when bounds are set, so
// callers can still show them.
type EventFilter struct {
	From            *time.Time
	To              *time.Time
	Categories      []string
	StudentInitials string
	IncludeUndated  bool
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.EventRow) error
	GetByID(ctx context.Context, id string) (*domain.EventRow, error)
	List(ctx context.Context, f EventFilter) ([]domain.EventRow, error)
	Update(ctx context.Context, e *domain.EventRow) error
	Delete(ctx context.Context, id string) error
}

type GovernanceRepo interface {
	Create(ctx context.Context, m *domain.GovernanceRow) error
	GetByID(ctx context.Context, id string) (*domain.GovernanceRow, error)
	List(ctx context.Context, from, to *time.Time) ([]domain.GovernanceRow, error)
	Delete(ctx context.Context, id string) error
	DeleteSeries(ctx context.Context, seriesID string) (int64, error)
}

type TransitionRepo interface {
	Create(ctx context.Context, w *domain.TransitionRow) error
	GetByID(ctx context.Context, id string) (*domain.TransitionRow, error)
	List(ctx context.Context, studentInitials string) ([]domain.TransitionRow, error)
	Update(ctx context.Context, w *domain.TransitionRow) error
	Delete(ctx context.Context, id string) error
}
