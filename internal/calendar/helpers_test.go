package calendar

import (
	"time"

	"github.com/cowandilla/clccal/internal/domain"
)

func day(s string) time.Time {
	d, ok := ParseDate(s)
	if !ok {
		panic("bad test date " + s)
	}
	return d
}

func ptr(t time.Time) *time.Time { return &t }

type recOpt func(*domain.EventRecord)

func withCategory(c domain.Category) recOpt {
	return func(r *domain.EventRecord) { r.Category = c }
}

func withTime(start string) recOpt {
	return func(r *domain.EventRecord) { r.StartTime = start }
}

func withEnd(s string) recOpt {
	return func(r *domain.EventRecord) { r.EndDate = ptr(day(s)) }
}

func withStudent(initials string, p domain.Program) recOpt {
	return func(r *domain.EventRecord) {
		r.StudentInitials = initials
		r.Program = p
	}
}

func rec(id, date string, opts ...recOpt) domain.EventRecord {
	r := domain.EventRecord{ID: id, Title: id, Category: domain.CategoryOther, RawDate: date}
	if d, ok := ParseDate(date); ok {
		r.StartDate = d
	}
	for _, o := range opts {
		o(&r)
	}
	return r
}

func ids(recs []domain.EventRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}
