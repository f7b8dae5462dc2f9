package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.Len() == 0 {
		return []error{fmt.Errorf("import file contains no records")}
	}
	for i := range schema.Events {
		errs = append(errs, validateEvent(fmt.Sprintf("events[%d]", i), &schema.Events[i])...)
	}
	for i := range schema.Governance {
		errs = append(errs, validateGovernance(fmt.Sprintf("governance[%d]", i), &schema.Governance[i])...)
	}
	for i := range schema.Series {
		errs = append(errs, validateSeries(fmt.Sprintf("series[%d]", i), &schema.Series[i])...)
	}
	errs = append(errs, validateTransitions(schema.Transitions)...)

	return errs
}

func validateEvent(at string, e *EventImport) []error {
	var errs []error

	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", at))
	}
	start, startErr := checkDate(at+".date", e.Date, true)
	if startErr != nil {
		errs = append(errs, startErr)
	}
	if end, err := checkDate(at+".end_date", e.EndDate, false); err != nil {
		errs = append(errs, err)
	} else if !end.IsZero() && startErr == nil && end.Before(start) {
		errs = append(errs, fmt.Errorf("%s.end_date %q is before date %q", at, e.EndDate, e.Date))
	}

	category := domain.CategoryOther
	if strings.TrimSpace(e.Category) != "" {
		c, ok := domain.ParseCategory(e.Category)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%s.category: unknown category %q", at, e.Category))
		case c == domain.CategoryPACMeeting:
			errs = append(errs, fmt.Errorf("%s.category: PAC meetings belong under governance", at))
		}
		category = c
	}
	if category.IsStudentRelated() && strings.TrimSpace(e.StudentInitials) == "" {
		errs = append(errs, fmt.Errorf("%s.student_initials is required for %s", at, category))
	}
	errs = append(errs, checkProgram(at+".program", e.Program)...)
	errs = append(errs, checkClock(at+".start_time", e.StartTime)...)
	errs = append(errs, checkClock(at+".end_time", e.EndTime)...)
	if strings.TrimSpace(e.EndTime) != "" && strings.TrimSpace(e.StartTime) == "" {
		errs = append(errs, fmt.Errorf("%s.end_time requires start_time", at))
	}

	return errs
}

func validateGovernance(at string, g *GovernanceImport) []error {
	var errs []error
	if _, err := checkDate(at+".date", g.Date, true); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, checkClock(at+".start_time", g.StartTime)...)
	return errs
}

func validateSeries(at string, s *SeriesImport) []error {
	var errs []error

	if strings.TrimSpace(s.Rule) == "" {
		errs = append(errs, fmt.Errorf("%s.rule is required", at))
	}
	start, startErr := checkDate(at+".start", s.Start, true)
	if startErr != nil {
		errs = append(errs, startErr)
	}
	if until, err := checkDate(at+".until", s.Until, false); err != nil {
		errs = append(errs, err)
	} else if !until.IsZero() && startErr == nil && until.Before(start) {
		errs = append(errs, fmt.Errorf("%s.until %q is before start %q", at, s.Until, s.Start))
	}
	for i, ex := range s.ExDates {
		if _, err := checkDate(fmt.Sprintf("%s.exdates[%d]", at, i), ex, true); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, checkClock(at+".meeting.start_time", s.Meeting.StartTime)...)

	return errs
}

func validateTransitions(weeks []TransitionImport) []error {
	var errs []error
	seen := make(map[string]int)

	for i := range weeks {
		w := &weeks[i]
		at := fmt.Sprintf("transitions[%d]", i)

		initials := strings.ToUpper(strings.TrimSpace(w.StudentInitials))
		if initials == "" {
			errs = append(errs, fmt.Errorf("%s.student_initials is required", at))
		}
		if w.Term < domain.MinTerm || w.Term > domain.MaxTerm {
			errs = append(errs, fmt.Errorf("%s.term: must be between %d and %d, got %d", at, domain.MinTerm, domain.MaxTerm, w.Term))
		}
		errs = append(errs, checkProgram(at+".program", w.Program)...)

		start, err := checkDate(at+".week_start", w.WeekStart, true)
		if err != nil {
			errs = append(errs, err)
		} else if start.Weekday() != time.Monday {
			errs = append(errs, fmt.Errorf("%s.week_start %q is a %s, not a Monday", at, w.WeekStart, start.Weekday()))
		} else if initials != "" {
			key := initials + "|" + domain.DateKey(start)
			if prev, dup := seen[key]; dup {
				errs = append(errs, fmt.Errorf("%s: duplicate week for %s starting %s (see transitions[%d])", at, initials, w.WeekStart, prev))
			} else {
				seen[key] = i
			}
		}

		errs = append(errs, validateDays(at, w.Days)...)
	}

	return errs
}

func validateDays(at string, days map[string]OffsiteImport) []error {
	var errs []error

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		field := fmt.Sprintf("%s.days.%s", at, k)
		if DayIndex(k) < 0 {
			errs = append(errs, fmt.Errorf("%s: unknown day (expected one of %s)", field, strings.Join(DayKeys[:], ", ")))
			continue
		}
		d := days[k]
		startErrs := checkClock(field+".start", d.Start)
		endErrs := checkClock(field+".end", d.End)
		errs = append(errs, startErrs...)
		errs = append(errs, endErrs...)
		if len(startErrs) > 0 || len(endErrs) > 0 {
			continue
		}
		start, _ := calendar.ParseClock(d.Start)
		end, _ := calendar.ParseClock(d.End)
		switch {
		case (start == "") != (end == ""):
			errs = append(errs, fmt.Errorf("%s needs both a start and an end time", field))
		case end != "" && end <= start:
			errs = append(errs, fmt.Errorf("%s: end time must be after start time", field))
		}
	}

	return errs
}

// DayIndex maps a day key onto its Monday-based position, or -1.
func DayIndex(key string) int {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, k := range DayKeys {
		if k == key {
			return i
		}
	}
	return -1
}

func checkDate(field, value string, required bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return time.Time{}, fmt.Errorf("%s is required", field)
		}
		return time.Time{}, nil
	}
	d, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)
	}
	return d, nil
}

func checkClock(field, value string) []error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, ok := calendar.ParseClock(value); !ok {
		return []error{fmt.Errorf("%s: invalid time %q", field, value)}
	}
	return nil
}

func checkProgram(field, value string) []error {
	value = strings.TrimSpace(value)
	if value == "" || domain.ParseProgram(value).IsKnown() {
		return nil
	}
	return []error{fmt.Errorf("%s: unknown program %q", field, value)}
}
