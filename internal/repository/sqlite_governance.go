package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cowandilla/clccal/internal/db"
	"github.com/cowandilla/clccal/internal/domain"
)

// SQLiteGovernanceRepo implements GovernanceRepo over pac_meetings. Each
// row is one meeting occurrence; series are expanded before storage.
type SQLiteGovernanceRepo struct {
	db db.DBTX
}

// NewSQLiteGovernanceRepo creates a new SQLiteGovernanceRepo.
func NewSQLiteGovernanceRepo(conn db.DBTX) *SQLiteGovernanceRepo {
	return &SQLiteGovernanceRepo{db: conn}
}

const governanceColumns = `id, meeting_date, meeting_type, start_time, location, chair, series_id`

func (r *SQLiteGovernanceRepo) Create(ctx context.Context, m *domain.GovernanceRow) error {
	query := `INSERT INTO pac_meetings (` + governanceColumns + `, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		nullableString(m.MeetingDate),
		nullableString(m.MeetingType),
		nullableString(m.StartTime),
		nullableString(m.Location),
		nullableString(m.Chair),
		nullableString(m.SeriesID),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting governance meeting: %w", err)
	}
	return nil
}

func (r *SQLiteGovernanceRepo) GetByID(ctx context.Context, id string) (*domain.GovernanceRow, error) {
	query := `SELECT ` + governanceColumns + ` FROM pac_meetings WHERE id = ?`
	m, err := scanGovernance(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("governance meeting %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning governance meeting: %w", err)
	}
	return &m, nil
}

// List returns occurrences ordered by meeting date. Occurrences without a
// date are only included when both bounds are open.
func (r *SQLiteGovernanceRepo) List(ctx context.Context, from, to *time.Time) ([]domain.GovernanceRow, error) {
	var where []string
	var args []any
	if from != nil {
		where = append(where, "meeting_date >= ?")
		args = append(args, nullableDate(from))
	}
	if to != nil {
		where = append(where, "substr(meeting_date, 1, 10) <= ?")
		args = append(args, nullableDate(to))
	}
	query := `SELECT ` + governanceColumns + ` FROM pac_meetings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY meeting_date, start_time"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing governance meetings: %w", err)
	}
	defer rows.Close()

	var meetings []domain.GovernanceRow
	for rows.Next() {
		m, err := scanGovernance(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning governance row: %w", err)
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating governance meetings: %w", err)
	}
	return meetings, nil
}

func (r *SQLiteGovernanceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pac_meetings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting governance meeting: %w", err)
	}
	return checkAffected(res, "governance meeting "+id)
}

// DeleteSeries removes every occurrence of a series and reports how many
// were removed.
func (r *SQLiteGovernanceRepo) DeleteSeries(ctx context.Context, seriesID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pac_meetings WHERE series_id = ?`, seriesID)
	if err != nil {
		return 0, fmt.Errorf("deleting governance series: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting governance series: %w", err)
	}
	return n, nil
}

func scanGovernance(s rowScanner) (domain.GovernanceRow, error) {
	cols := make(nullStrings, 7)
	if err := s.Scan(cols.targets()...); err != nil {
		return domain.GovernanceRow{}, err
	}
	return domain.GovernanceRow{
		ID:          cols.at(0),
		MeetingDate: cols.at(1),
		MeetingType: cols.at(2),
		StartTime:   cols.at(3),
		Location:    cols.at(4),
		Chair:       cols.at(5),
		SeriesID:    cols.at(6),
	}, nil
}
