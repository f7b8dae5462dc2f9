package calendar

import (
	"slices"
	"sort"
	"time"

	"github.com/cowandilla/clccal/internal/domain"
)

// DateIndex groups EventRecords by start date. Within a day, records keep
// the order in which they were supplied. Records whose start date could not
// be parsed are kept in Undated instead of being dropped.
type DateIndex struct {
	days    map[string][]domain.EventRecord
	Undated []domain.EventRecord
}

// BuildIndex concatenates the lists and groups them by start date. When
// window is non-nil, records starting outside it are discarded. No
// deduplication is done: callers must not pass overlapping fetches of the
// same source.
func BuildIndex(window *Window, lists ...[]domain.EventRecord) DateIndex {
	idx := DateIndex{days: make(map[string][]domain.EventRecord)}
	for _, list := range lists {
		for _, rec := range list {
			if rec.IsUndated() {
				idx.Undated = append(idx.Undated, rec)
				continue
			}
			if window != nil && !window.Contains(rec.StartDate) {
				continue
			}
			key := domain.DateKey(rec.StartDate)
			idx.days[key] = append(idx.days[key], rec)
		}
	}
	return idx
}

// On returns a copy of the records starting on d.
func (idx DateIndex) On(d time.Time) []domain.EventRecord {
	return slices.Clone(idx.days[domain.DateKey(d)])
}

// Dates lists the indexed dates in chronological order.
func (idx DateIndex) Dates() []time.Time {
	keys := make([]string, 0, len(idx.days))
	for k := range idx.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dates := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		d, _ := time.Parse(domain.DateLayout, k)
		dates = append(dates, d)
	}
	return dates
}

// Len is the total number of records, dated and undated.
func (idx DateIndex) Len() int {
	n := len(idx.Undated)
	for _, recs := range idx.days {
		n += len(recs)
	}
	return n
}

// Merge returns a new index holding idx's records followed, per day, by
// other's. Neither input is modified.
func (idx DateIndex) Merge(other DateIndex) DateIndex {
	out := DateIndex{days: make(map[string][]domain.EventRecord, len(idx.days)+len(other.days))}
	for k, recs := range idx.days {
		out.days[k] = slices.Clone(recs)
	}
	for k, recs := range other.days {
		out.days[k] = append(out.days[k], recs...)
	}
	out.Undated = append(slices.Clone(idx.Undated), other.Undated...)
	return out
}

// Restrict returns the dated part of the index that falls inside w, along
// with the undated records.
func (idx DateIndex) Restrict(w Window) DateIndex {
	out := DateIndex{days: make(map[string][]domain.EventRecord), Undated: slices.Clone(idx.Undated)}
	for k, recs := range idx.days {
		d, _ := time.Parse(domain.DateLayout, k)
		if w.Contains(d) {
			out.days[k] = slices.Clone(recs)
		}
	}
	return out
}
