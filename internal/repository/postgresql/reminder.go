package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/reminder"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const reminderColumns = `
	id, leave_request_id, user_id, type, reminder_date, days_before_vacation,
	is_active, is_sent, message, created_by, created_at, updated_at`

type reminderRepositoryImpl struct {
	db *database.DB
}

func NewReminderRepository(db *database.DB) reminder.ReminderRepository {
	return &reminderRepositoryImpl{db: db}
}

func scanReminder(row pgx.Row) (reminder.Reminder, error) {
	var rm reminder.Reminder
	err := row.Scan(
		&rm.ID,
		&rm.LeaveRequestID,
		&rm.UserID,
		&rm.Type,
		&rm.ReminderDate,
		&rm.DaysBeforeVacation,
		&rm.IsActive,
		&rm.IsSent,
		&rm.Message,
		&rm.CreatedBy,
		&rm.CreatedAt,
		&rm.UpdatedAt,
	)
	return rm, err
}

func (r *reminderRepositoryImpl) queryReminders(ctx context.Context, query string, args ...interface{}) ([]reminder.Reminder, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := []reminder.Reminder{}
	for rows.Next() {
		rm, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rm)
	}
	return reminders, rows.Err()
}

func (r *reminderRepositoryImpl) Create(ctx context.Context, rm reminder.Reminder) (reminder.Reminder, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vacation_reminders (
			id, leave_request_id, user_id, type, reminder_date, days_before_vacation,
			is_active, is_sent, message, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rm.ID, rm.LeaveRequestID, rm.UserID, rm.Type, rm.ReminderDate, rm.DaysBeforeVacation,
		rm.IsActive, rm.IsSent, rm.Message, rm.CreatedBy,
	).Scan(&rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return reminder.Reminder{}, err
	}
	return rm, nil
}

// CreateBatch inserts all reminders with one multi-row statement.
func (r *reminderRepositoryImpl) CreateBatch(ctx context.Context, rs []reminder.Reminder) error {
	if len(rs) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	const columns = 10
	valueStrings := make([]string, 0, len(rs))
	valueArgs := make([]interface{}, 0, len(rs)*columns)

	for i, rm := range rs {
		base := i * columns
		placeholders := make([]string, columns)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+", NOW(), NOW())")
		valueArgs = append(valueArgs,
			rm.ID, rm.LeaveRequestID, rm.UserID, rm.Type, rm.ReminderDate, rm.DaysBeforeVacation,
			rm.IsActive, rm.IsSent, rm.Message, rm.CreatedBy,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO vacation_reminders (
			id, leave_request_id, user_id, type, reminder_date, days_before_vacation,
			is_active, is_sent, message, created_by, created_at, updated_at
		) VALUES %s
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to batch create reminders: %w", err)
	}
	return nil
}

func (r *reminderRepositoryImpl) GetByID(ctx context.Context, id string) (reminder.Reminder, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + reminderColumns + ` FROM vacation_reminders WHERE id = $1`

	rm, err := scanReminder(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reminder.Reminder{}, reminder.ErrReminderNotFound
		}
		return reminder.Reminder{}, err
	}
	return rm, nil
}

func (r *reminderRepositoryImpl) Update(ctx context.Context, rm reminder.Reminder) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vacation_reminders
		SET reminder_date = $2, days_before_vacation = $3, is_active = $4, is_sent = $5,
			message = $6, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		rm.ID, rm.ReminderDate, rm.DaysBeforeVacation, rm.IsActive, rm.IsSent, rm.Message,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return reminder.ErrReminderNotFound
	}
	return nil
}

func (r *reminderRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM vacation_reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return reminder.ErrReminderNotFound
	}
	return nil
}

func (r *reminderRepositoryImpl) ListByLeaveRequest(ctx context.Context, leaveRequestID string) ([]reminder.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM vacation_reminders
		WHERE leave_request_id = $1
		ORDER BY reminder_date
	`
	return r.queryReminders(ctx, query, leaveRequestID)
}

func (r *reminderRepositoryImpl) ListActiveInRange(ctx context.Context, start, end time.Time) ([]reminder.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM vacation_reminders
		WHERE is_active AND reminder_date BETWEEN $1 AND $2
		ORDER BY reminder_date, created_at
	`
	return r.queryReminders(ctx, query, start, end)
}

func (r *reminderRepositoryImpl) ListDue(ctx context.Context, day time.Time) ([]reminder.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM vacation_reminders
		WHERE is_active AND NOT is_sent AND reminder_date = $1
		ORDER BY created_at
	`
	return r.queryReminders(ctx, query, day)
}

func (r *reminderRepositoryImpl) MarkSent(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vacation_reminders
		SET is_sent = TRUE, updated_at = NOW()
		WHERE id = ANY($1::uuid[])
	`
	if _, err := q.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("failed to mark reminders sent: %w", err)
	}
	return nil
}

type reminderSettingsRepositoryImpl struct {
	db *database.DB
}

func NewReminderSettingsRepository(db *database.DB) reminder.SettingsRepository {
	return &reminderSettingsRepositoryImpl{db: db}
}

func (r *reminderSettingsRepositoryImpl) GetByManager(ctx context.Context, managerID string) (*reminder.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT manager_id, is_enabled, default_reminders, custom_message, notification_method,
			   auto_create_for_new_vacations, created_at, updated_at
		FROM reminder_settings
		WHERE manager_id = $1
	`

	var s reminder.Settings
	err := q.QueryRow(ctx, query, managerID).Scan(
		&s.ManagerID,
		&s.IsEnabled,
		&s.DefaultReminders,
		&s.CustomMessage,
		&s.NotificationMethod,
		&s.AutoCreateForNewVacations,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *reminderSettingsRepositoryImpl) Upsert(ctx context.Context, s reminder.Settings) (reminder.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reminder_settings (
			manager_id, is_enabled, default_reminders, custom_message, notification_method,
			auto_create_for_new_vacations, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (manager_id) DO UPDATE SET
			is_enabled = EXCLUDED.is_enabled,
			default_reminders = EXCLUDED.default_reminders,
			custom_message = EXCLUDED.custom_message,
			notification_method = EXCLUDED.notification_method,
			auto_create_for_new_vacations = EXCLUDED.auto_create_for_new_vacations,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	defaults := s.DefaultReminders
	if defaults == nil {
		defaults = []int{}
	}
	err := q.QueryRow(ctx, query,
		s.ManagerID, s.IsEnabled, defaults, s.CustomMessage, s.NotificationMethod,
		s.AutoCreateForNewVacations,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return reminder.Settings{}, err
	}
	return s, nil
}
