package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
)

// dateValue is a YYYY-MM-DD flag that stays nil until set.
type dateValue struct {
	dst **time.Time
}

func (v dateValue) String() string {
	if v.dst == nil || *v.dst == nil {
		return ""
	}
	return domain.DateKey(**v.dst)
}

func (v dateValue) Set(s string) error {
	d, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	*v.dst = &d
	return nil
}

func (v dateValue) Type() string { return "date" }

func dateFlag(fs *pflag.FlagSet, dst **time.Time, name, usage string) {
	fs.Var(dateValue{dst: dst}, name, usage)
}

// monthValue is a YYYY-MM flag; the zero YearMonth means unset.
type monthValue struct {
	dst *calendar.YearMonth
}

func (v monthValue) String() string {
	if v.dst == nil || v.dst.Year == 0 {
		return ""
	}
	return v.dst.String()
}

func (v monthValue) Set(s string) error {
	ym, err := calendar.ParseYearMonth(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*v.dst = ym
	return nil
}

func (v monthValue) Type() string { return "month" }

func monthFlag(fs *pflag.FlagSet, dst *calendar.YearMonth, name, usage string) {
	fs.Var(monthValue{dst: dst}, name, usage)
}

func parseCategories(raw []string) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(raw))
	for _, r := range raw {
		c, ok := domain.ParseCategory(r)
		if !ok {
			return nil, fmt.Errorf("unknown category %q (see 'clccal legend')", r)
		}
		out = append(out, c)
	}
	return out, nil
}

func parsePrograms(raw []string) []domain.Program {
	out := make([]domain.Program, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.ParseProgram(r))
	}
	return out
}

func deref(t *time.Time) string {
	if t == nil {
		return ""
	}
	return domain.DateKey(*t)
}
