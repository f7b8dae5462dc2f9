package service

import (
	"context"
	"time"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/importer"
)

// RecordStore is the read side the calendar views are built from. Bounds
// are inclusive start-date bounds; nil is open.
type RecordStore interface {
	FetchEvents(ctx context.Context, from, to *time.Time) ([]domain.EventRow, error)
	FetchEventsByCategory(ctx context.Context, from, to *time.Time, categories []domain.Category) ([]domain.EventRow, error)
	FetchGovernanceMeetings(ctx context.Context) ([]domain.GovernanceRow, error)
	FetchTransitionWeeks(ctx context.Context, studentInitials string) ([]domain.TransitionRow, error)
}

// Actor is who is asking for a write. Admin gates deletes.
type Actor struct {
	Name  string
	Admin bool
}

type CalendarService interface {
	Month(ctx context.Context, req MonthRequest) (*MonthView, error)
	Week(ctx context.Context, req WeekRequest) (*WeekView, error)
	Agenda(ctx context.Context, req AgendaRequest) (*AgendaView, error)
	Timeline(ctx context.Context, req TimelineRequest) (*TimelineView, error)
	Transitions(ctx context.Context, studentInitials string) (*TransitionsView, error)
	Records(ctx context.Context, window calendar.Window) (*RecordsView, error)
}

type EventService interface {
	Create(ctx context.Context, in EventInput) (*domain.EventRecord, error)
	Get(ctx context.Context, id string) (*domain.EventRecord, error)
	List(ctx context.Context, from, to *time.Time) ([]domain.EventRecord, error)
	Update(ctx context.Context, id string, in EventInput) (*domain.EventRecord, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type GovernanceService interface {
	Add(ctx context.Context, in GovernanceInput) (*domain.EventRecord, error)
	List(ctx context.Context, from, to *time.Time) ([]domain.EventRecord, error)
	Materialize(ctx context.Context, in SeriesInput) (*SeriesResult, error)
	Delete(ctx context.Context, actor Actor, id string) error
	DeleteSeries(ctx context.Context, actor Actor, seriesID string) (int64, error)
}

type TransitionService interface {
	Add(ctx context.Context, in TransitionInput) (*domain.TransitionWeek, error)
	Update(ctx context.Context, id string, in TransitionInput) (*domain.TransitionWeek, error)
	List(ctx context.Context, studentInitials string) ([]domain.TransitionWeek, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

// ImportResult holds the outcome of a bulk import.
type ImportResult struct {
	EventCount      int
	GovernanceCount int
	TransitionCount int
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
