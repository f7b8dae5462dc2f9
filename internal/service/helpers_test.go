package service

import (
	"context"
	"sync"
	"time"

	"github.com/cowandilla/clccal/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockRecordStore struct {
	mock.Mock
}

func (m *mockRecordStore) FetchEvents(ctx context.Context, from, to *time.Time) ([]domain.EventRow, error) {
	args := m.Called(ctx, from, to)
	rows, _ := args.Get(0).([]domain.EventRow)
	return rows, args.Error(1)
}

func (m *mockRecordStore) FetchEventsByCategory(ctx context.Context, from, to *time.Time, categories []domain.Category) ([]domain.EventRow, error) {
	args := m.Called(ctx, from, to, categories)
	rows, _ := args.Get(0).([]domain.EventRow)
	return rows, args.Error(1)
}

func (m *mockRecordStore) FetchGovernanceMeetings(ctx context.Context) ([]domain.GovernanceRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]domain.GovernanceRow)
	return rows, args.Error(1)
}

func (m *mockRecordStore) FetchTransitionWeeks(ctx context.Context, studentInitials string) ([]domain.TransitionRow, error) {
	args := m.Called(ctx, studentInitials)
	rows, _ := args.Get(0).([]domain.TransitionRow)
	return rows, args.Error(1)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 10, 30, 0, 0, time.UTC) }
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := domain.Date(y, m, d)
	return &t
}
