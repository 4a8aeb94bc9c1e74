package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const timeRecordColumns = `
	id, user_id, date, time_in, time_out, break_minutes, total_hours, created_at, updated_at`

type timeRecordRepositoryImpl struct {
	db *database.DB
}

func NewTimeRecordRepository(db *database.DB) timerecord.TimeRecordRepository {
	return &timeRecordRepositoryImpl{db: db}
}

func scanTimeRecord(row pgx.Row) (timerecord.TimeRecord, error) {
	var tr timerecord.TimeRecord
	err := row.Scan(
		&tr.ID,
		&tr.UserID,
		&tr.Date,
		&tr.TimeIn,
		&tr.TimeOut,
		&tr.BreakMinutes,
		&tr.TotalHours,
		&tr.CreatedAt,
		&tr.UpdatedAt,
	)
	return tr, err
}

func (r *timeRecordRepositoryImpl) queryTimeRecords(ctx context.Context, query string, args ...interface{}) ([]timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []timerecord.TimeRecord{}
	for rows.Next() {
		tr, err := scanTimeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, tr)
	}
	return records, rows.Err()
}

func (r *timeRecordRepositoryImpl) Create(ctx context.Context, record timerecord.TimeRecord) (timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_records (
			id, user_id, date, time_in, time_out, break_minutes, total_hours,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID, record.UserID, record.Date, record.TimeIn, record.TimeOut,
		record.BreakMinutes, record.TotalHours,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return timerecord.TimeRecord{}, err
	}
	return record, nil
}

func (r *timeRecordRepositoryImpl) Update(ctx context.Context, record timerecord.TimeRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_records
		SET time_in = $2, time_out = $3, break_minutes = $4, total_hours = $5, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		record.ID, record.TimeIn, record.TimeOut, record.BreakMinutes, record.TotalHours,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return timerecord.ErrTimeRecordNotFound
	}
	return nil
}

func (r *timeRecordRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeRecordColumns + `
		FROM time_records
		WHERE user_id = $1 AND date = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	tr, err := scanTimeRecord(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &tr, nil
}

func (r *timeRecordRepositoryImpl) GetForPeriod(ctx context.Context, userID string, start, end time.Time) ([]timerecord.TimeRecord, error) {
	query := `
		SELECT ` + timeRecordColumns + `
		FROM time_records
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, created_at
	`
	return r.queryTimeRecords(ctx, query, userID, start, end)
}

func (r *timeRecordRepositoryImpl) GetForUsers(ctx context.Context, userIDs []string, start, end time.Time) ([]timerecord.TimeRecord, error) {
	if len(userIDs) == 0 {
		return []timerecord.TimeRecord{}, nil
	}
	query := `
		SELECT ` + timeRecordColumns + `
		FROM time_records
		WHERE user_id = ANY($1::uuid[]) AND date BETWEEN $2 AND $3
		ORDER BY date, user_id, created_at
	`
	return r.queryTimeRecords(ctx, query, userIDs, start, end)
}
