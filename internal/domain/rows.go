package domain

// EventRow is a general or student event as held by the record store.
// Columns are kept as the stored text; NULL reads as "".
type EventRow struct {
	ID              string
	Title           string
	EventType       string
	EventDate       string
	EndDate         string
	StartTime       string
	EndTime         string
	Location        string
	Notes           string
	AddedBy         string
	Program         string
	StudentInitials string
}

// GovernanceRow is one pre-materialized PAC meeting occurrence. SeriesID
// links occurrences created together from one recurrence rule.
type GovernanceRow struct {
	ID          string
	MeetingDate string
	MeetingType string
	StartTime   string
	Location    string
	Chair       string
	SeriesID    string
}

// TransitionRow is one stored week of a student's transition schedule.
// Each weekday carries an optional off-site start/end pair.
type TransitionRow struct {
	ID              string
	StudentInitials string
	Program         string
	Term            int
	WeekLabel       string
	WeekStart       string
	DayStart        [5]string
	DayEnd          [5]string
}
