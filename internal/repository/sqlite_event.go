package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cowandilla/clccal/internal/db"
	"github.com/cowandilla/clccal/internal/domain"
)

// SQLiteEventRepo implements EventRepo over the clc_events table.
type SQLiteEventRepo struct {
	db db.DBTX
}

// NewSQLiteEventRepo creates a new SQLiteEventRepo.
func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: conn}
}

// datePattern matches a stored value starting with a YYYY-MM-DD date.
const datePattern = "[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]"

const eventColumns = `id, title, event_type, event_date, end_date, start_time, end_time,
	location, notes, added_by, program, student_initials`

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.EventRow) error {
	now := nowUTC()
	query := `INSERT INTO clc_events (` + eventColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Title,
		e.EventType,
		e.EventDate,
		nullableString(e.EndDate),
		nullableString(e.StartTime),
		nullableString(e.EndTime),
		nullableString(e.Location),
		nullableString(e.Notes),
		e.AddedBy,
		nullableString(e.Program),
		nullableString(e.StudentInitials),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id string) (*domain.EventRow, error) {
	query := `SELECT ` + eventColumns + ` FROM clc_events WHERE id = ?`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning event: %w", err)
	}
	return &e, nil
}

// List returns events ordered by start date then start time, with untimed
// events first within a day.
func (r *SQLiteEventRepo) List(ctx context.Context, f EventFilter) ([]domain.EventRow, error) {
	var where []string
	var args []any

	var bounds []string
	if f.From != nil {
		bounds = append(bounds, "event_date >= ?")
		args = append(args, nullableDate(f.From))
	}
	if f.To != nil {
		// event_date may carry a time suffix; compare on the date part.
		bounds = append(bounds, "substr(event_date, 1, 10) <= ?")
		args = append(args, nullableDate(f.To))
	}
	if len(bounds) > 0 {
		cond := strings.Join(bounds, " AND ")
		if f.IncludeUndated {
			cond = "(" + cond + ") OR event_date NOT GLOB '" + datePattern + "*'"
		}
		where = append(where, "("+cond+")")
	}
	if len(f.Categories) > 0 {
		where = append(where, "event_type IN ("+placeholders(len(f.Categories))+")")
		for _, c := range f.Categories {
			args = append(args, c)
		}
	}
	if s := strings.TrimSpace(f.StudentInitials); s != "" {
		where = append(where, "UPPER(student_initials) = UPPER(?)")
		args = append(args, s)
	}

	query := `SELECT ` + eventColumns + ` FROM clc_events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY event_date, start_time, created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []domain.EventRow
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

func (r *SQLiteEventRepo) Update(ctx context.Context, e *domain.EventRow) error {
	query := `UPDATE clc_events SET title = ?, event_type = ?, event_date = ?, end_date = ?,
		start_time = ?, end_time = ?, location = ?, notes = ?, added_by = ?, program = ?,
		student_initials = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Title,
		e.EventType,
		e.EventDate,
		nullableString(e.EndDate),
		nullableString(e.StartTime),
		nullableString(e.EndTime),
		nullableString(e.Location),
		nullableString(e.Notes),
		e.AddedBy,
		nullableString(e.Program),
		nullableString(e.StudentInitials),
		nowUTC(),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return checkAffected(res, "event "+e.ID)
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clc_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return checkAffected(res, "event "+id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (domain.EventRow, error) {
	cols := make(nullStrings, 12)
	if err := s.Scan(cols.targets()...); err != nil {
		return domain.EventRow{}, err
	}
	return domain.EventRow{
		ID:              cols.at(0),
		Title:           cols.at(1),
		EventType:       cols.at(2),
		EventDate:       cols.at(3),
		EndDate:         cols.at(4),
		StartTime:       cols.at(5),
		EndTime:         cols.at(6),
		Location:        cols.at(7),
		Notes:           cols.at(8),
		AddedBy:         cols.at(9),
		Program:         cols.at(10),
		StudentInitials: cols.at(11),
	}, nil
}
