package domain

import (
	"strings"
	"time"
)

// GovernanceIDPrefix marks identifiers of governance meeting occurrences.
// Records carrying it are read-only to the event editors.
const GovernanceIDPrefix = "pac_"

// EventRecord is the normalized, source-agnostic unit of calendar content.
// Records are values: the engine never mutates one after normalization.
type EventRecord struct {
	ID       string
	Title    string
	Category Category

	// StartDate is a civil date (see Date). It is zero when the stored value
	// could not be parsed; RawDate keeps the original text for display.
	StartDate time.Time
	EndDate   *time.Time
	RawDate   string

	// StartTime and EndTime are naive "15:04" values when parseable, the raw
	// stored text otherwise, and empty when absent.
	StartTime string
	EndTime   string

	Location string
	Notes    string
	AddedBy  string

	Program         Program
	StudentInitials string
}

// End returns the last day of the record's span. A missing end date means a
// single-day record.
func (e EventRecord) End() time.Time {
	if e.EndDate == nil {
		return e.StartDate
	}
	return *e.EndDate
}

// IsMultiDay reports whether the record spans more than its start date.
func (e EventRecord) IsMultiDay() bool {
	return e.EndDate != nil && e.EndDate.After(e.StartDate)
}

// IsUndated reports whether the start date could not be parsed.
func (e EventRecord) IsUndated() bool {
	return e.StartDate.IsZero()
}

// IsReadOnly reports whether the record is a synthesized governance
// occurrence that must not be edited or deleted through the event editors.
func (e EventRecord) IsReadOnly() bool {
	return strings.HasPrefix(e.ID, GovernanceIDPrefix)
}

// Label is the compact display name: student initials when present,
// otherwise the title.
func (e EventRecord) Label() string {
	return CoalesceStr(e.StudentInitials, e.Title)
}

// Accent resolves the record's display accent.
func (e EventRecord) Accent() Accent {
	return ResolveAccent(e.Category, e.Program)
}
