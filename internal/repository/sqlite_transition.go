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

// SQLiteTransitionRepo implements TransitionRepo over transition_weeks.
type SQLiteTransitionRepo struct {
	db db.DBTX
}

// NewSQLiteTransitionRepo creates a new SQLiteTransitionRepo.
func NewSQLiteTransitionRepo(conn db.DBTX) *SQLiteTransitionRepo {
	return &SQLiteTransitionRepo{db: conn}
}

const transitionColumns = `id, student_initials, program, term, week_label, week_start,
	mon_start, mon_end, tue_start, tue_end, wed_start, wed_end,
	thu_start, thu_end, fri_start, fri_end`

func transitionDayArgs(w *domain.TransitionRow) []any {
	args := make([]any, 0, 10)
	for i := range w.DayStart {
		args = append(args, nullableString(w.DayStart[i]), nullableString(w.DayEnd[i]))
	}
	return args
}

func (r *SQLiteTransitionRepo) Create(ctx context.Context, w *domain.TransitionRow) error {
	now := nowUTC()
	query := `INSERT INTO transition_weeks (` + transitionColumns + `, created_at, updated_at)
		VALUES (` + placeholders(18) + `)`
	args := []any{w.ID, w.StudentInitials, nullableString(w.Program), w.Term, w.WeekLabel, w.WeekStart}
	args = append(args, transitionDayArgs(w)...)
	args = append(args, now, now)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting transition week: %w", err)
	}
	return nil
}

func (r *SQLiteTransitionRepo) GetByID(ctx context.Context, id string) (*domain.TransitionRow, error) {
	query := `SELECT ` + transitionColumns + ` FROM transition_weeks WHERE id = ?`
	w, err := scanTransition(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transition week %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning transition week: %w", err)
	}
	return &w, nil
}

// List returns weeks ordered by week start then student. An empty
// studentInitials lists every student.
func (r *SQLiteTransitionRepo) List(ctx context.Context, studentInitials string) ([]domain.TransitionRow, error) {
	query := `SELECT ` + transitionColumns + ` FROM transition_weeks`
	var args []any
	if s := strings.TrimSpace(studentInitials); s != "" {
		query += ` WHERE UPPER(student_initials) = UPPER(?)`
		args = append(args, s)
	}
	query += ` ORDER BY week_start, student_initials`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transition weeks: %w", err)
	}
	defer rows.Close()

	var weeks []domain.TransitionRow
	for rows.Next() {
		w, err := scanTransition(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transition row: %w", err)
		}
		weeks = append(weeks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transition weeks: %w", err)
	}
	return weeks, nil
}

func (r *SQLiteTransitionRepo) Update(ctx context.Context, w *domain.TransitionRow) error {
	query := `UPDATE transition_weeks SET student_initials = ?, program = ?, term = ?, week_label = ?,
		week_start = ?, mon_start = ?, mon_end = ?, tue_start = ?, tue_end = ?, wed_start = ?,
		wed_end = ?, thu_start = ?, thu_end = ?, fri_start = ?, fri_end = ?, updated_at = ?
		WHERE id = ?`
	args := []any{w.StudentInitials, nullableString(w.Program), w.Term, w.WeekLabel, w.WeekStart}
	args = append(args, transitionDayArgs(w)...)
	args = append(args, nowUTC(), w.ID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating transition week: %w", err)
	}
	return checkAffected(res, "transition week "+w.ID)
}

func (r *SQLiteTransitionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transition_weeks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting transition week: %w", err)
	}
	return checkAffected(res, "transition week "+id)
}

func scanTransition(s rowScanner) (domain.TransitionRow, error) {
	var w domain.TransitionRow
	var program sql.NullString
	days := make(nullStrings, 10)
	dest := []any{&w.ID, &w.StudentInitials, &program, &w.Term, &w.WeekLabel, &w.WeekStart}
	dest = append(dest, days.targets()...)
	if err := s.Scan(dest...); err != nil {
		return domain.TransitionRow{}, err
	}
	w.Program = program.String
	for i := range w.DayStart {
		w.DayStart[i] = days.at(2 * i)
		w.DayEnd[i] = days.at(2*i + 1)
	}
	return w, nil
}
