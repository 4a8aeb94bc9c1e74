package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/utils"
	"github.com/google/uuid"
)

const (
	// UpcomingDays is the window of GetUpcoming.
	UpcomingDays = 7
	// DefaultAlertDays is the window of GetVacationAlerts when none is given.
	DefaultAlertDays = 14

	eventNotification = "notification"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
	Location      *time.Location
}

type service struct {
	repo   notification.Repository
	hub    *sse.Hub[notification.NotificationResponse]
	config Config
	now    func() time.Time

	queue    chan notification.CreateNotificationRequest
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once

	// stopMu orders queue sends before Stop; stopped flips under the write lock.
	stopMu  sync.RWMutex
	stopped bool
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(repo notification.Repository, hub *sse.Hub[notification.NotificationResponse], cfg Config) notification.Service {
	return newService(repo, hub, cfg, time.Now)
}

func newService(repo notification.Repository, hub *sse.Hub[notification.NotificationResponse], cfg Config, now func() time.Time) *service {
	// Set defaults
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		config: cfg,
		now:    now,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	// Start background workers
	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

// worker is the background worker that processes notification queue
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications, err := s.toEntities(batch)
		if err != nil {
			slog.Error("failed to build notifications", "worker", id, "error", err)
			batch = batch[:0]
			return
		}

		// Batch insert
		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			slog.Error("failed to batch insert notifications", "worker", id, "count", len(notifications), "error", err)
		} else {
			slog.Debug("notifications inserted", "worker", id, "count", len(notifications))
			s.publish(notifications...)
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain what was queued before Stop.
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *service) toEntities(reqs []notification.CreateNotificationRequest) ([]*notification.Notification, error) {
	now := s.now()
	out := make([]*notification.Notification, len(reqs))
	for i, req := range reqs {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate notification ID: %w", err)
		}
		out[i] = &notification.Notification{
			ID:             id.String(),
			RecipientID:    req.RecipientID,
			Type:           req.Type,
			ReminderID:     req.ReminderID,
			LeaveRequestID: req.LeaveRequestID,
			Title:          req.Title,
			Message:        req.Message,
			EmployeeName:   req.EmployeeName,
			VacationStart:  req.VacationStart,
			VacationEnd:    req.VacationEnd,
			ScheduledFor:   req.ScheduledFor,
			CreatedAt:      now,
		}
	}
	return out, nil
}

func (s *service) publish(notifications ...*notification.Notification) {
	for _, n := range notifications {
		s.hub.Publish(n.RecipientID, sse.Event[notification.NotificationResponse]{
			UserID: n.RecipientID,
			Event:  eventNotification,
			Data:   toResponse(n),
		})
	}
}

// QueueNotification queues a notification for async processing. Once Stop
// has begun, or when the queue is full, it is inserted directly.
func (s *service) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.enqueue(req) {
		return nil
	}
	return s.directInsert(ctx, req)
}

// enqueue never blocks. A request it accepts is in the queue before the
// workers start draining.
func (s *service) enqueue(req notification.CreateNotificationRequest) bool {
	s.stopMu.RLock()
	defer s.stopMu.RUnlock()
	if s.stopped {
		return false
	}
	select {
	case s.queue <- req:
		return true
	default:
		return false
	}
}

// QueueBulkNotification queues every request and reports all failures.
func (s *service) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	var errs []error
	for _, req := range reqs {
		if err := s.QueueNotification(ctx, req); err != nil {
			slog.Error("failed to queue notification", "recipient_id", req.RecipientID, "reminder_id", req.ReminderID, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// directInsert inserts a notification directly when queue is full
func (s *service) directInsert(ctx context.Context, req notification.CreateNotificationRequest) error {
	notifications, err := s.toEntities([]notification.CreateNotificationRequest{req})
	if err != nil {
		return err
	}
	if err := s.repo.Create(ctx, notifications[0]); err != nil {
		return fmt.Errorf("%w: %v", notification.ErrQueueFull, err)
	}
	s.publish(notifications[0])
	return nil
}

// toResponse converts a Notification entity to NotificationResponse
func toResponse(n *notification.Notification) notification.NotificationResponse {
	resp := notification.NotificationResponse{
		ID:             n.ID,
		Type:           n.Type,
		ReminderID:     n.ReminderID,
		LeaveRequestID: n.LeaveRequestID,
		Title:          n.Title,
		Message:        n.Message,
		EmployeeName:   n.EmployeeName,
		ScheduledFor:   utils.FormatDate(n.ScheduledFor),
		IsRead:         n.IsRead,
		ReadAt:         n.ReadAt,
		CreatedAt:      n.CreatedAt,
	}
	if !n.VacationStart.IsZero() {
		resp.VacationDates = notification.VacationDates{
			StartDate: utils.FormatDate(n.VacationStart),
			EndDate:   utils.FormatDate(n.VacationEnd),
		}
	}
	return resp
}

func toResponses(notifications []*notification.Notification) []notification.NotificationResponse {
	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = toResponse(n)
	}
	return responses
}

func (s *service) today() time.Time {
	return utils.Day(s.now().In(s.config.Location))
}

// GetUpcoming returns unread notifications scheduled between today and
// UpcomingDays ahead.
func (s *service) GetUpcoming(ctx context.Context, userID string) ([]notification.NotificationResponse, error) {
	today := s.today()
	notifications, err := s.repo.ListScheduled(ctx, userID, today, today.AddDate(0, 0, UpcomingDays), true)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return toResponses(notifications), nil
}

// GetVacationAlerts returns the notifications scheduled in the next days
// days, read or not, earliest first.
func (s *service) GetVacationAlerts(ctx context.Context, userID string, days int) ([]notification.NotificationResponse, error) {
	if days <= 0 {
		days = DefaultAlertDays
	}
	today := s.today()
	notifications, err := s.repo.ListScheduled(ctx, userID, today, today.AddDate(0, 0, days), false)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return toResponses(notifications), nil
}

// MarkAsRead marks one of the user's notifications as read
func (s *service) MarkAsRead(ctx context.Context, userID string, notificationID string) error {
	if err := s.repo.MarkAsRead(ctx, notificationID, userID); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// Subscribe creates an SSE subscription for a user
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(userID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- notification.SSEEvent{Event: event.Event, Data: event.Data}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop flushes queued notifications and waits for the workers.
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		s.stopMu.Lock()
		s.stopped = true
		s.stopMu.Unlock()

		close(s.stopCh)
		s.wg.Wait()
		slog.Info("notification service stopped")
	})
}
