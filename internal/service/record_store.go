package service

import (
	"context"
	"time"

	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/repository"
)

type repoRecordStore struct {
	events      repository.EventRepo
	governance  repository.GovernanceRepo
	transitions repository.TransitionRepo
}

// NewRecordStore exposes the repositories as a RecordStore.
func NewRecordStore(
	events repository.EventRepo,
	governance repository.GovernanceRepo,
	transitions repository.TransitionRepo,
) RecordStore {
	return &repoRecordStore{events: events, governance: governance, transitions: transitions}
}

func (s *repoRecordStore) FetchEvents(ctx context.Context, from, to *time.Time) ([]domain.EventRow, error) {
	return s.events.List(ctx, repository.EventFilter{From: from, To: to, IncludeUndated: true})
}

func (s *repoRecordStore) FetchEventsByCategory(ctx context.Context, from, to *time.Time, categories []domain.Category) ([]domain.EventRow, error) {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}
	return s.events.List(ctx, repository.EventFilter{From: from, To: to, Categories: names, IncludeUndated: true})
}

func (s *repoRecordStore) FetchGovernanceMeetings(ctx context.Context) ([]domain.GovernanceRow, error) {
	return s.governance.List(ctx, nil, nil)
}

func (s *repoRecordStore) FetchTransitionWeeks(ctx context.Context, studentInitials string) ([]domain.TransitionRow, error) {
	return s.transitions.List(ctx, studentInitials)
}
