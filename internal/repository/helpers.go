package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cowandilla/clccal/internal/domain"
)

// nullableString converts an optional text value for SQLite storage.
// Blank values are stored as NULL so that ordering puts them first.
func nullableString(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// nullableDate formats an optional civil date bound for a query argument.
func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return domain.DateKey(*t)
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// nullStrings is a scan target that reads NULL as "".
type nullStrings []sql.NullString

func (n nullStrings) targets() []any {
	out := make([]any, len(n))
	for i := range n {
		out[i] = &n[i]
	}
	return out
}

func (n nullStrings) at(i int) string {
	return n[i].String
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// checkAffected turns a write that touched no row into ErrNotFound.
func checkAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
