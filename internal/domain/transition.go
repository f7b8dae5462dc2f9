package domain

import "time"

// WeekdayNames are the five school days in column order.
var WeekdayNames = [5]string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// MinTerm and MaxTerm bound the school term ordinal.
const (
	MinTerm = 1
	MaxTerm = 4
)

// OffsiteHours is the part of a school day a student spends off-site.
type OffsiteHours struct {
	Start string
	End   string
}

// TransitionWeek is one school week of a student's mainstream-school
// attendance schedule. A nil day means on-site all day.
type TransitionWeek struct {
	ID              string
	StudentInitials string
	Program         Program
	Term            int
	WeekLabel       string

	// WeekStart is the Monday of the week. Zero when the stored value could
	// not be parsed; RawWeekStart keeps the original text.
	WeekStart    time.Time
	RawWeekStart string

	Days [5]*OffsiteHours
}

// OffsiteDays counts the weekdays with off-site hours.
func (w TransitionWeek) OffsiteDays() int {
	n := 0
	for _, d := range w.Days {
		if d != nil {
			n++
		}
	}
	return n
}
