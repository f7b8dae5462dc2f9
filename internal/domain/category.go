package domain

import "strings"

// Category classifies an EventRecord. Values are stored verbatim, so a
// Category read from the store may be outside the known set.
type Category string

const (
	CategoryStaffMeeting      Category = "Staff Meeting"
	CategoryPACMeeting        Category = "PAC Meeting"
	CategoryPD                Category = "PD / Professional Dev"
	CategoryTeamMeeting       Category = "Team Meeting"
	CategoryExcursion         Category = "Excursion / Event"
	CategoryStaffAbsence      Category = "Planned Staff Absence"
	CategoryBirthday          Category = "Birthday"
	CategoryEntryMeeting      Category = "Entry Meeting"
	CategoryReviewMeeting     Category = "Review Meeting"
	CategoryTransitionMeeting Category = "Transition Meeting"
	CategoryTACMeeting        Category = "TAC Meeting"
	CategoryStudentPlacement  Category = "Student Placement"
	CategoryOther             Category = "Other"
)

// Categories lists every known category in legend order.
var Categories = []Category{
	CategoryStaffMeeting,
	CategoryPACMeeting,
	CategoryPD,
	CategoryTeamMeeting,
	CategoryExcursion,
	CategoryStaffAbsence,
	CategoryBirthday,
	CategoryEntryMeeting,
	CategoryReviewMeeting,
	CategoryTransitionMeeting,
	CategoryTACMeeting,
	CategoryStudentPlacement,
	CategoryOther,
}

// StudentMeetingCategories are the point-in-time student meetings overlaid
// on the placement timeline.
var StudentMeetingCategories = []Category{
	CategoryEntryMeeting,
	CategoryReviewMeeting,
	CategoryTransitionMeeting,
	CategoryTACMeeting,
}

// IsKnown reports whether c is one of the fixed categories.
func (c Category) IsKnown() bool {
	_, ok := categoryAccents[c]
	return ok
}

// IsStudentMeeting reports whether c is one of the four student meetings.
func (c Category) IsStudentMeeting() bool {
	switch c {
	case CategoryEntryMeeting, CategoryReviewMeeting, CategoryTransitionMeeting, CategoryTACMeeting:
		return true
	}
	return false
}

// IsStudentRelated reports whether c carries a student program accent.
func (c Category) IsStudentRelated() bool {
	return c == CategoryStudentPlacement || c.IsStudentMeeting()
}

// ParseCategory maps s onto a known category, ignoring case. Unknown values
// come back unchanged with ok=false.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return Category(s), false
}
