package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/database"
	"github.com/google/uuid"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

const notificationInsertColumns = 13

func notificationArgs(n *notification.Notification) []interface{} {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return []interface{}{
		n.ID,
		n.RecipientID,
		string(n.Type),
		nullIfEmpty(n.ReminderID),
		nullIfEmpty(n.LeaveRequestID),
		n.Title,
		n.Message,
		n.EmployeeName,
		n.VacationStart,
		n.VacationEnd,
		n.ScheduledFor,
		n.IsRead,
		n.CreatedAt,
	}
}

// Create creates a new notification
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.CreateBatch(ctx, []*notification.Notification{n})
}

// CreateBatch creates multiple notifications with one statement
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(notifications))
	valueArgs := make([]interface{}, 0, len(notifications)*notificationInsertColumns)

	for i, n := range notifications {
		base := i * notificationInsertColumns
		placeholders := make([]string, notificationInsertColumns)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+")")
		valueArgs = append(valueArgs, notificationArgs(n)...)
	}

	query := fmt.Sprintf(`
		INSERT INTO notifications (
			id, recipient_id, type, reminder_id, leave_request_id, title, message,
			employee_name, vacation_start, vacation_end, scheduled_for, is_read, created_at
		) VALUES %s
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to batch create notifications: %w", err)
	}
	return nil
}

// ListScheduled returns the recipient's notifications scheduled in [from, to]
func (r *notificationRepository) ListScheduled(ctx context.Context, recipientID string, from, to time.Time, unreadOnly bool) ([]*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "recipient_id = $1 AND scheduled_for BETWEEN $2 AND $3"
	if unreadOnly {
		whereClause += " AND is_read = false"
	}

	query := fmt.Sprintf(`
		SELECT id, recipient_id, type, reminder_id, leave_request_id, title, message,
			   employee_name, vacation_start, vacation_end, scheduled_for, is_read, read_at, created_at
		FROM notifications
		WHERE %s
		ORDER BY scheduled_for
	`, whereClause)

	rows, err := q.Query(ctx, query, recipientID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*notification.Notification{}
	for rows.Next() {
		var n notification.Notification
		var notifType string
		var reminderID, leaveRequestID *string
		var vacationStart, vacationEnd *time.Time

		if err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&notifType,
			&reminderID,
			&leaveRequestID,
			&n.Title,
			&n.Message,
			&n.EmployeeName,
			&vacationStart,
			&vacationEnd,
			&n.ScheduledFor,
			&n.IsRead,
			&n.ReadAt,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		n.Type = notification.NotificationType(notifType)
		if reminderID != nil {
			n.ReminderID = *reminderID
		}
		if leaveRequestID != nil {
			n.LeaveRequestID = *leaveRequestID
		}
		if vacationStart != nil {
			n.VacationStart = *vacationStart
		}
		if vacationEnd != nil {
			n.VacationEnd = *vacationEnd
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// MarkAsRead marks a notification as read
func (r *notificationRepository) MarkAsRead(ctx context.Context, id string, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = true, read_at = NOW()
		WHERE id = $1 AND recipient_id = $2
	`

	result, err := q.Exec(ctx, query, id, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
